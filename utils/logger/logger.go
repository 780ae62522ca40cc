package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New 创建日志，level 解析失败时回退到 info，console 格式输出带颜色的可读文本
func New(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Nop returns a logger pointer that discards everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
