package app

import (
	"flag"

	"github.com/memmaker/bitmaptext/engine/util"
	"github.com/pkg/errors"
)

// Config holds the window settings and the assets of a text application.
type Config struct {
	Title     string
	Width     int
	Height    int
	VSync     bool
	Resizable bool

	FontPath   string // default font, path without extension
	SecondFont string // optional second font drawn next to the first one
	LogLevel   string
}

func DefaultConfig() Config {
	return Config{
		Title:     "bitmap text",
		Width:     800,
		Height:    600,
		VSync:     true,
		Resizable: true,
		FontPath:  "assets/fonts/OpenSans12",
		LogLevel:  "warn",
	}
}

// RegisterFlags binds the command line flags to the fields of c; the current values are the
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.StringVar(&c.FontPath, "font", c.FontPath, "font to draw with, path without .fnt/.png")
	fs.StringVar(&c.SecondFont, "font2", c.SecondFont, "second font to draw in the same frame")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level: error, warn, info or debug")
	fs.BoolVar(&c.VSync, "vsync", c.VSync, "wait for vertical sync")
}

// Validate checks the values and applies the log level.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.FontPath == "" {
		return errors.New("no font given")
	}
	level, ok := util.ParseLogLevel(c.LogLevel)
	if !ok {
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	util.GLOBAL_LOG_LEVEL = level
	return nil
}
