// Command textdemo opens a window and draws bitmap font text with the engine/text package.
//
// Usage:
//
//	textdemo -font assets/fonts/OpenSans12 [-font2 assets/fonts/Mono16] [-log info]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bitmaptext/engine/app"
	"github.com/memmaker/bitmaptext/engine/text"
	"github.com/memmaker/bitmaptext/engine/text/gltext"
	"github.com/memmaker/bitmaptext/engine/util"
)

func main() {
	cfg := app.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !util.DoesFileExist(cfg.FontPath + ".fnt") {
		util.LogIOError(fmt.Sprintf("font %s.fnt not found, text will not be visible", cfg.FontPath))
	}
	mainthread.Run(func() {
		if err := run(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})
}

type demo struct {
	ctx     *text.Context
	cache   *text.Cache
	counter *text.Entity
	cfg     app.Config
	frame   int
}

func run(cfg app.Config) error {
	var (
		window    *glfw.Window
		terminate func()
		d         *demo
		err       error
	)
	mainthread.Call(func() {
		window, terminate, err = app.InitOpenGL(cfg)
		if err != nil {
			return
		}
		d, err = newDemo(cfg, window)
		if err != nil {
			terminate()
		}
	})
	if err != nil {
		return err
	}

	width, height := d.ctx.Size()
	application := &app.GlApplication{
		Window:       window,
		Title:        cfg.Title,
		WindowWidth:  width,
		WindowHeight: height,
		DrawFunc:     d.draw,
		KeyHandler: func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			if key == glfw.KeyEscape && action == glfw.Press {
				window.SetShouldClose(true)
			}
		},
		ResizeHandler: d.ctx.Resize,
		TerminateFunc: func() {
			d.delete()
			terminate()
		},
	}
	application.Run()
	return nil
}

func newDemo(cfg app.Config, window *glfw.Window) (*demo, error) {
	width, height := window.GetFramebufferSize()
	ctx, err := text.NewContext(gltext.NewDevice(), width, height)
	if err != nil {
		return nil, err
	}
	counter, err := text.NewEntity(ctx, "", cfg.FontPath,
		text.WithReserve(48),
		text.WithPosition(mgl32.Vec2{10, 40}),
		text.WithColor(mgl32.Vec3{1, 0.85, 0.2}),
	)
	if err != nil {
		util.LogTextError(fmt.Sprintf("frame counter: %v", err))
	}
	return &demo{
		ctx:     ctx,
		cache:   text.NewCache(ctx, cfg.FontPath),
		counter: counter,
		cfg:     cfg,
	}, nil
}

func (d *demo) draw(elapsed float64) {
	d.frame++

	d.cache.DrawText("The quick brown fox jumps over the lazy dog.", mgl32.Vec2{10, 10}, mgl32.Vec3{1, 1, 1})
	if d.cfg.SecondFont != "" {
		d.cache.DrawTextWithFont("Second font, same frame.", d.cfg.SecondFont, mgl32.Vec2{10, 70}, mgl32.Vec3{0.4, 0.8, 1})
	}
	if d.frame%120 < 60 {
		d.cache.DrawText("blinking", mgl32.Vec2{10, 100}, mgl32.Vec3{1, 0.3, 0.3})
	}

	if err := d.counter.SetText(fmt.Sprintf("frame %d, %.2f ms", d.frame, elapsed*1000)); err != nil {
		util.LogTextError(err.Error())
	}
	d.counter.Draw(d.ctx)

	d.cache.EndFrame()
}

func (d *demo) delete() {
	d.cache.Clear()
	d.counter.Delete()
	d.ctx.Delete()
}
