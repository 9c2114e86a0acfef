// Package viewer shows a terrain mesh in an interactive OpenGL window.
package viewer

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"europa/internal/logger"
	"europa/pkg/config"
	"europa/pkg/terrain"
)

// Control rates
const (
	orbitSpeed = 1.2   // radians per second
	zoomSpeed  = 1.8   // distance factor per second
	dragScale  = 0.005 // radians per pixel
	wheelZoom  = 0.9
)

// Viewer owns the window and GL context
type Viewer struct {
	window *glfw.Window
	config config.ViewerConfig
	logger *logger.Logger
	input  *InputHandler

	fbWidth, fbHeight int
	isRunning         bool
	lastUpdate        time.Time
}

// NewViewer opens a window with a 4.1 core context. Call from the main
// goroutine with the OS thread locked.
func NewViewer(cfg config.ViewerConfig, log *logger.Logger) (*Viewer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}
	log.Infof("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	v := &Viewer{
		window: window,
		config: cfg,
		logger: log,
		input:  NewInputHandler(window),
	}
	v.fbWidth, v.fbHeight = window.GetFramebufferSize()
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		v.fbWidth, v.fbHeight = width, height
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.02, 0.02, 0.04, 1.0)

	return v, nil
}

// Run shows mesh until the window closes or Escape is pressed. field keeps
// the camera above the surface and may be nil.
func (v *Viewer) Run(mesh *terrain.Mesh, field terrain.ScalarField) error {
	defer v.cleanup()

	renderer, err := NewTerrainRenderer(mesh)
	if err != nil {
		return fmt.Errorf("failed to upload terrain: %w", err)
	}
	defer renderer.Close()

	camera := NewOrbitCamera(mesh.Size)
	lo, hi := mesh.HeightRange()
	camera.Target[1] = (lo + hi) / 2
	shading := Shading{
		SunDir:  v.config.Sun(),
		Albedo:  v.config.Color(),
		Ambient: v.config.Ambient,
	}

	v.logger.Info("Controls: arrows or drag to orbit, W/S or wheel to zoom, R to reset, Esc to quit")

	v.isRunning = true
	v.lastUpdate = time.Now()
	frames := 0
	fpsStart := v.lastUpdate

	for v.isRunning && !v.window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(v.lastUpdate).Seconds())
		v.lastUpdate = now

		glfw.PollEvents()
		v.input.Update()
		v.processInput(camera, dt, mesh.Size)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if v.fbWidth > 0 && v.fbHeight > 0 {
			aspect := float32(v.fbWidth) / float32(v.fbHeight)
			eye := camera.EyeAbove(field)
			viewProj := camera.Projection(v.config.FOV, aspect).Mul4(camera.View(eye))
			renderer.Draw(viewProj, shading)
		}
		v.window.SwapBuffers()

		frames++
		if elapsed := now.Sub(fpsStart); elapsed >= 500*time.Millisecond {
			v.logger.Debugf("%.1f fps", float64(frames)/elapsed.Seconds())
			frames = 0
			fpsStart = now
		}
	}

	return nil
}

// processInput applies keyboard and mouse controls to camera
func (v *Viewer) processInput(camera *OrbitCamera, dt, size float32) {
	if v.input.IsKeyPressed(glfw.KeyEscape) {
		v.isRunning = false
		return
	}
	if v.input.IsKeyPressed(glfw.KeyR) {
		target := camera.Target
		*camera = *NewOrbitCamera(size)
		camera.Target = target
	}

	var dYaw, dPitch float32
	if v.input.IsKeyDown(glfw.KeyLeft) {
		dYaw -= orbitSpeed * dt
	}
	if v.input.IsKeyDown(glfw.KeyRight) {
		dYaw += orbitSpeed * dt
	}
	if v.input.IsKeyDown(glfw.KeyUp) {
		dPitch += orbitSpeed * dt
	}
	if v.input.IsKeyDown(glfw.KeyDown) {
		dPitch -= orbitSpeed * dt
	}
	dx, dy := v.input.DragDelta()
	dYaw -= float32(dx) * dragScale
	dPitch += float32(dy) * dragScale
	if dYaw != 0 || dPitch != 0 {
		camera.Orbit(dYaw, dPitch)
	}

	if v.input.IsKeyDown(glfw.KeyW) {
		camera.Zoom(1 / (1 + zoomSpeed*dt))
	}
	if v.input.IsKeyDown(glfw.KeyS) {
		camera.Zoom(1 + zoomSpeed*dt)
	}
	if wheel := v.input.MouseWheelDelta(); wheel != 0 {
		camera.Zoom(float32(math.Pow(wheelZoom, wheel)))
	}
}

// cleanup destroys the window and terminates GLFW
func (v *Viewer) cleanup() {
	v.logger.Info("Closing viewer...")
	v.window.Destroy()
	glfw.Terminate()
}
