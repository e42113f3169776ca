package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/der-antikeks/rtr/engine"
)

// Window owns the glfw window, its GL context and the Device drawing
// into it. Create and use it on the locked main thread only.
type Window struct {
	title  string
	window *glfw.Window
	device *Device

	resizeCallback      func(w, h int)
	keyCallback         func(key glfw.Key, action glfw.Action, mods glfw.ModifierKey)
	mouseScrollCallback func(x, y float64)
}

func NewWindow(title string, width, height int) (*Window, error) {
	w := &Window{title: title}

	if err := w.initGLFW(width, height); err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		w.window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initialize gl: %w", err)
	}

	engine.Logger().Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	fw, fh := w.window.GetFramebufferSize()
	w.device = NewDevice(fw, fh)
	return w, nil
}

func errorCallback(err glfw.ErrorCode, desc string) {
	engine.Logger().Error("glfw", "code", err, "desc", desc)
}

func (w *Window) initGLFW(width, height int) error {
	glfw.SetErrorCallback(errorCallback)
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create window: %w", err)
	}

	window.SetFramebufferSizeCallback(w.onResize)
	window.SetKeyCallback(w.onKey)
	window.SetScrollCallback(w.onMouseScroll)

	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	w.window = window
	return nil
}

func (w *Window) Device() *Device {
	return w.device
}

func (w *Window) Close() {
	w.device.Dispose()
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) Running() bool {
	return !w.window.ShouldClose()
}

func (w *Window) Quit() {
	w.window.SetShouldClose(true)
}

// SetTitle is a no-op when the title is unchanged.
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.window.SetTitle(title)
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

// WaitEvents processes pending events, blocking at most timeout seconds.
func (w *Window) WaitEvents(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

func (w *Window) SetResizeCallback(f func(w, h int)) {
	w.resizeCallback = f
}

func (w *Window) onResize(_ *glfw.Window, width, height int) {
	if w.device != nil {
		w.device.SetViewport(width, height)
	}

	if w.resizeCallback != nil {
		w.resizeCallback(width, height)
	}
}

func (w *Window) SetKeyCallback(f func(key glfw.Key, action glfw.Action, mods glfw.ModifierKey)) {
	w.keyCallback = f
}

func (w *Window) onKey(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if w.keyCallback != nil {
		w.keyCallback(k, action, mods)
	}
}

func (w *Window) SetMouseScrollCallback(f func(x, y float64)) {
	w.mouseScrollCallback = f
}

func (w *Window) onMouseScroll(_ *glfw.Window, xoff, yoff float64) {
	if w.mouseScrollCallback != nil {
		w.mouseScrollCallback(xoff, yoff)
	}
}
