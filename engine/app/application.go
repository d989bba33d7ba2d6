// Package app opens an OpenGL 3.3 core window with glfw and runs the frame loop.
package app

import (
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/bitmaptext/engine/glhf"
	"github.com/memmaker/bitmaptext/engine/util"
	"github.com/pkg/errors"
)

type GlApplication struct {
	Window        *glfw.Window
	Title         string
	TerminateFunc func()
	UpdateFunc    func(elapsed float64)
	DrawFunc      func(elapsed float64)
	KeyHandler    func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	ResizeHandler func(width, height int)
	WindowWidth   int
	WindowHeight  int
	Stats         FrameStats
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(key, scancode, action, mods)
	}
}

func (a *GlApplication) FramebufferSizeCallback(w *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		// minimized
		return
	}
	a.WindowWidth = width
	a.WindowHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
	if a.ResizeHandler != nil {
		a.ResizeHandler(width, height)
	}
}

// Run executes the frame loop until the window is closed. Every frame runs on the main
// thread in one mainthread.Call, so GL objects finalized in between get deleted there too.
func (a *GlApplication) Run() {
	defer mainthread.Call(a.TerminateFunc)

	var previousTime float64
	mainthread.Call(func() {
		a.Window.SetKeyCallback(a.KeyCallback)
		a.Window.SetFramebufferSizeCallback(a.FramebufferSizeCallback)
		previousTime = glfw.GetTime()
	})
	shouldQuit := false
	for !shouldQuit {
		mainthread.Call(func() {
			if a.Window.ShouldClose() {
				shouldQuit = true
				return
			}
			glhf.Clear(0, 0, 0, 1)

			time := glfw.GetTime()
			elapsed := time - previousTime
			previousTime = time

			if a.UpdateFunc != nil {
				a.UpdateFunc(elapsed)
			}
			if a.DrawFunc != nil {
				a.DrawFunc(elapsed)
			}

			if a.Stats.Tick(elapsed) {
				a.Window.SetTitle(fmt.Sprintf("%s - %s / Elapsed: %.3f", a.Title, a.Stats.String(), elapsed*1000))
			}

			a.Window.SwapBuffers()
			glfw.PollEvents()
		})
	}
}

// InitOpenGL creates the window with a current OpenGL 3.3 core context. Must be called on the
// main thread (inside mainthread.Call). The returned function terminates glfw.
func InitOpenGL(cfg Config) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw init")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "create window")
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	glhf.Init()

	version := gl.GoStr(gl.GetString(gl.VERSION))
	util.LogSystemInfo(fmt.Sprintf("OpenGL version %s", version))

	return win, func() {
		glfw.Terminate()
	}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
