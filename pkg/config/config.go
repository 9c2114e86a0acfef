package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v2"

	"europa/internal/logger"
	"europa/pkg/terrain"
)

// Config represents the main configuration
type Config struct {
	Logging LoggingConfig  `yaml:"logging"`
	Terrain TerrainConfig  `yaml:"terrain"`
	Recipe  terrain.Recipe `yaml:"recipe"`
	Build   BuildConfig    `yaml:"build"`
	Viewer  ViewerConfig   `yaml:"viewer"`
}

// LoggingConfig selects verbosity and an optional log file
type LoggingConfig struct {
	Level   string `yaml:"level"`   // debug, info, warn, error
	File    string `yaml:"file"`    // empty logs to stdout only
	Console bool   `yaml:"console"` // with a file, also log to stdout
	Colors  bool   `yaml:"colors"`  // ANSI colours on a terminal
}

// TerrainConfig mirrors terrain.TerrainParams
type TerrainConfig struct {
	Size       float32   `yaml:"size"`       // meters
	Resolution uint32    `yaml:"resolution"` // quads per side
	Amplitude  float32   `yaml:"amplitude"`
	Frequency  float32   `yaml:"frequency"`
	LineDir    []float32 `yaml:"line_dir,flow"` // normalised on load
	Seed       uint32    `yaml:"seed"`
}

// BuildConfig controls mesh construction
type BuildConfig struct {
	Workers int    `yaml:"workers"` // 0 uses every CPU
	Export  string `yaml:"export"`  // optional OBJ output path
}

// ViewerConfig contains window and shading configuration
type ViewerConfig struct {
	Enabled      bool      `yaml:"enabled"`
	Width        int       `yaml:"width"`
	Height       int       `yaml:"height"`
	Title        string    `yaml:"title"`
	VSync        bool      `yaml:"vsync"`
	FOV          float32   `yaml:"fov"` // vertical, degrees
	SunDirection []float32 `yaml:"sun_direction,flow"`
	Albedo       []float32 `yaml:"albedo,flow"`
	Ambient      float32   `yaml:"ambient"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	demo := terrain.EuropaDemoParams()

	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Colors:  true,
		},
		Terrain: TerrainConfig{
			Size:       demo.Size,
			Resolution: demo.Res,
			Amplitude:  demo.Amp,
			Frequency:  demo.Freq,
			LineDir:    []float32{0.8, 0.2},
			Seed:       demo.Seed,
		},
		Recipe: terrain.DefaultRecipe(),
		Build: BuildConfig{
			Workers: 0,
		},
		Viewer: ViewerConfig{
			Enabled:      true,
			Width:        1280,
			Height:       720,
			Title:        "Europa View",
			VSync:        false,
			FOV:          60,
			SunDirection: []float32{-0.4, 0.35, -0.85},
			Albedo:       []float32{0.78, 0.83, 0.88}, // pale ice
			Ambient:      0.08,
		},
	}
}

// Params converts the terrain section into validated build parameters
func (c TerrainConfig) Params() (terrain.TerrainParams, error) {
	if len(c.LineDir) != 2 {
		return terrain.TerrainParams{}, fmt.Errorf("terrain.line_dir needs 2 components, got %d", len(c.LineDir))
	}

	p := terrain.NewTerrainParams(
		c.Size,
		c.Resolution,
		c.Amplitude,
		c.Frequency,
		mgl32.Vec2{c.LineDir[0], c.LineDir[1]},
		c.Seed,
	)
	if err := p.Validate(); err != nil {
		return terrain.TerrainParams{}, fmt.Errorf("terrain config: %w", err)
	}
	return p, nil
}

// Sun returns the sun direction as a vector
func (c ViewerConfig) Sun() mgl32.Vec3 {
	return mgl32.Vec3{c.SunDirection[0], c.SunDirection[1], c.SunDirection[2]}
}

// Color returns the surface albedo as a vector
func (c ViewerConfig) Color() mgl32.Vec3 {
	return mgl32.Vec3{c.Albedo[0], c.Albedo[1], c.Albedo[2]}
}

// Validate checks the sections that are not validated by the terrain package
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %v", err)
	}
	if !c.Logging.Console && c.Logging.File == "" {
		return fmt.Errorf("logging.console can only be disabled when logging.file is set")
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must not be negative, got %d", c.Build.Workers)
	}
	if len(c.Viewer.SunDirection) != 3 {
		return fmt.Errorf("viewer.sun_direction needs 3 components, got %d", len(c.Viewer.SunDirection))
	}
	if len(c.Viewer.Albedo) != 3 {
		return fmt.Errorf("viewer.albedo needs 3 components, got %d", len(c.Viewer.Albedo))
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		return fmt.Errorf("viewer.fov must be in (0, 180), got %v", c.Viewer.FOV)
	}
	return nil
}

// LoadConfig loads the configuration from a file. Missing keys keep their
// defaults. On error the returned config is still usable defaults.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	parsed := DefaultConfig()
	if err := yaml.Unmarshal(data, parsed); err != nil {
		return config, fmt.Errorf("error parsing config: %v", err)
	}

	if err := parsed.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %v", filePath, err)
	}

	return parsed, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}
