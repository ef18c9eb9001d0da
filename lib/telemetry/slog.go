package telemetry

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SlogOptions struct {
	Debug bool
	// LogFile, when set, also writes JSON records to a size-rotated file.
	LogFile string
}

// InitSlog installs the default slog logger: colored output on stderr and
// optionally a rotated JSON log file. The returned closer releases the file.
func InitSlog(opts SlogOptions) io.Closer {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	console := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	if opts.LogFile == "" {
		slog.SetDefault(slog.New(console))
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   opts.LogFile,
		MaxSize:    5,
		MaxBackups: 3,
		Compress:   true,
	}
	slog.SetDefault(slog.New(slogmulti.Fanout(
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}),
	)))
	return file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
