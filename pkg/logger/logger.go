package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.Default()

// Init configures the global logger. Production gets JSON output,
// everything else gets the text handler with debug enabled.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// normalizeArgs lets call sites pass a bare error (or any odd trailing value)
// without breaking slog's key-value pairing.
func normalizeArgs(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}

	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)

	last := args[len(args)-1]
	if err, ok := last.(error); ok {
		return append(out, "error", err.Error())
	}
	return append(out, "detail", last)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, normalizeArgs(args)...)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalizeArgs(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalizeArgs(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalizeArgs(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalizeArgs(args)...)
	os.Exit(1)
}
