package viewer

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// trackedKeys are the keys the viewer polls each frame
var trackedKeys = []glfw.Key{
	glfw.KeyLeft, glfw.KeyRight, glfw.KeyUp, glfw.KeyDown,
	glfw.KeyW, glfw.KeyS, glfw.KeyR, glfw.KeyEscape,
}

// InputHandler tracks key and mouse state between frames
type InputHandler struct {
	window          *glfw.Window
	currentKeys     map[glfw.Key]bool
	previousKeys    map[glfw.Key]bool
	currentMouse    [2]float64
	previousMouse   [2]float64
	dragging        bool
	mouseWheelDelta float64
}

// NewInputHandler attaches to window
func NewInputHandler(window *glfw.Window) *InputHandler {
	handler := &InputHandler{
		window:       window,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}

	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handler.mouseWheelDelta += yoffset
	})

	return handler
}

// Update polls the window; call once per frame after PollEvents
func (ih *InputHandler) Update() {
	for k, v := range ih.currentKeys {
		ih.previousKeys[k] = v
	}
	for _, key := range trackedKeys {
		ih.currentKeys[key] = ih.window.GetKey(key) == glfw.Press
	}

	ih.previousMouse = ih.currentMouse
	x, y := ih.window.GetCursorPos()
	ih.currentMouse = [2]float64{x, y}

	wasDragging := ih.dragging
	ih.dragging = ih.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	if !wasDragging {
		// no jump on the first frame of a drag
		ih.previousMouse = ih.currentMouse
	}
}

// IsKeyDown reports whether key is held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed reports whether key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// DragDelta returns the cursor motion while the left button is held
func (ih *InputHandler) DragDelta() (dx, dy float64) {
	if !ih.dragging {
		return 0, 0
	}
	return ih.currentMouse[0] - ih.previousMouse[0], ih.currentMouse[1] - ih.previousMouse[1]
}

// MouseWheelDelta returns the scroll since the last call and resets it
func (ih *InputHandler) MouseWheelDelta() float64 {
	delta := ih.mouseWheelDelta
	ih.mouseWheelDelta = 0
	return delta
}
