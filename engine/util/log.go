package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var GLOBAL_LOG_LEVEL = LogLevelWarning
var GLOBAL_LOG_CATEGORIES = LogFont | LogText | LogOpenGL | LogIO | LogSystem

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLogLevel maps "error", "warn", "info" and "debug" to a LogLevel.
func ParseLogLevel(name string) (LogLevel, bool) {
	switch strings.ToLower(name) {
	case "error":
		return LogLevelError, true
	case "warn", "warning":
		return LogLevelWarning, true
	case "info":
		return LogLevelInfo, true
	case "debug":
		return LogLevelDebug, true
	}
	return 0, false
}

type LogCategory int

const (
	LogFont LogCategory = 1 << iota
	LogText
	LogOpenGL
	LogIO
	LogSystem
)

func (c LogCategory) String() string {
	switch c {
	case LogFont:
		return "font"
	case LogText:
		return "text"
	case LogOpenGL:
		return "gl"
	case LogIO:
		return "io"
	case LogSystem:
		return "system"
	}
	return "misc"
}

var logOutput io.Writer = os.Stderr
var logColored = term.IsTerminal(int(os.Stderr.Fd()))

// SetLogOutput redirects all log lines to w. Colors are used only if w is a terminal.
func SetLogOutput(w io.Writer) {
	logOutput = w
	logColored = false
	if f, ok := w.(*os.File); ok {
		logColored = term.IsTerminal(int(f.Fd()))
	}
}

var levelColors = map[LogLevel]string{
	LogLevelError:   "\x1b[31m",
	LogLevelWarning: "\x1b[33m",
	LogLevelInfo:    "\x1b[36m",
	LogLevelDebug:   "\x1b[90m",
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	tag := lvl.String()
	if logColored {
		tag = levelColors[lvl] + tag + "\x1b[0m"
	}
	fmt.Fprintf(logOutput, "[%s] %s: %s\n", tag, cat, txt)
}

func LogFontInfo(txt string) {
	log(LogFont, LogLevelInfo, txt)
}

func LogFontDebug(txt string) {
	log(LogFont, LogLevelDebug, txt)
}

func LogFontWarning(txt string) {
	log(LogFont, LogLevelWarning, txt)
}

func LogFontError(txt string) {
	log(LogFont, LogLevelError, txt)
}

func LogTextDebug(txt string) {
	log(LogText, LogLevelDebug, txt)
}

func LogTextWarning(txt string) {
	log(LogText, LogLevelWarning, txt)
}

func LogTextError(txt string) {
	log(LogText, LogLevelError, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}
