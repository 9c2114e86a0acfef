package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"europa/internal/logger"
	"europa/pkg/config"
	"europa/pkg/meshio"
	"europa/pkg/terrain"
	"europa/pkg/viewer"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

type options struct {
	configPath string
	export     string
	dumpConfig string
	logLevel   string
	headless   bool
	workers    int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("europa", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to configuration file")
	fs.StringVar(&opts.export, "export", "", "Write the mesh as Wavefront OBJ to this path")
	fs.StringVar(&opts.dumpConfig, "dump-config", "", "Write the effective configuration to this path and exit")
	fs.StringVar(&opts.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	fs.BoolVar(&opts.headless, "headless", false, "Build (and export) without opening a window")
	fs.IntVar(&opts.workers, "workers", -1, "Mesh build workers, 0 for every CPU (overrides build.workers)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.NewLogger(opts.logLevel)
	log.Info("Starting Europa terrain synthesis...")

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		log.Warnf("%v", err)
	}
	applyOverrides(cfg, opts)

	if _, err := logger.ParseLevel(cfg.Logging.Level); err != nil {
		log.Warnf("%v, using info", err)
	}
	if configured, err := openLogger(cfg.Logging); err != nil {
		log.Warnf("Logging to stdout only: %v", err)
		log.SetLevel(cfg.Logging.Level)
	} else {
		log = configured
	}
	defer log.Close()

	if err := run(cfg, opts, log); err != nil {
		log.Fatalf("%v", err)
	}
}

// openLogger builds the logger described by the logging section
func openLogger(lc config.LoggingConfig) (*logger.Logger, error) {
	var (
		log *logger.Logger
		err error
	)
	switch {
	case lc.File == "":
		log = logger.NewLogger(lc.Level)
	case lc.Console:
		log, err = logger.NewMultiLogger(lc.Level, lc.File)
	default:
		log, err = logger.NewFileLogger(lc.Level, lc.File)
	}
	if err != nil {
		return nil, err
	}

	if !lc.Colors {
		log.EnableColors(false)
	}
	return log, nil
}

// applyOverrides copies command line settings over the loaded config
func applyOverrides(cfg *config.Config, opts options) {
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.workers >= 0 {
		cfg.Build.Workers = opts.workers
	}
	if opts.export != "" {
		cfg.Build.Export = opts.export
	}
	if opts.headless {
		cfg.Viewer.Enabled = false
	}
}

func run(cfg *config.Config, opts options, log *logger.Logger) error {
	if opts.dumpConfig != "" {
		if err := config.SaveConfig(cfg, opts.dumpConfig); err != nil {
			return err
		}
		log.Infof("Configuration written to %s", opts.dumpConfig)
		return nil
	}

	mesh, field, err := build(cfg, log)
	if err != nil {
		return err
	}

	if cfg.Build.Export != "" {
		done := log.Timed("export")
		if err := meshio.SaveOBJ(mesh, cfg.Build.Export); err != nil {
			return err
		}
		done()
		log.Infof("Mesh written to %s", cfg.Build.Export)
	}

	if !cfg.Viewer.Enabled {
		return nil
	}

	view, err := viewer.NewViewer(cfg.Viewer, log)
	if err != nil {
		return fmt.Errorf("failed to initialize viewer: %w", err)
	}
	log.Info("Viewer initialized, starting render loop...")
	return view.Run(mesh, field)
}

// build assembles the configured field and meshes it
func build(cfg *config.Config, log *logger.Logger) (*terrain.Mesh, terrain.ScalarField, error) {
	params, err := cfg.Terrain.Params()
	if err != nil {
		return nil, nil, err
	}

	field, err := terrain.Assemble(params, cfg.Recipe)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to assemble terrain field: %w", err)
	}

	workers := cfg.Build.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	log.Infof("Building %dx%d grid over %.0f m with %d workers (seed %d)",
		params.Res, params.Res, params.Size, workers, params.Seed)

	done := log.Timed("mesh build")
	mesh, err := terrain.BuildParallel(params, field, workers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build mesh: %w", err)
	}
	done()

	lo, hi := mesh.HeightRange()
	log.Infof("Mesh ready: %d vertices, %d triangles, height %.3f..%.3f",
		mesh.VertexCount(), mesh.TriangleCount(), lo, hi)

	return mesh, field, nil
}
