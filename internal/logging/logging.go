// Package logging builds the installer's log sink: a human-readable console stream
// plus an append-only JSON log file.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured field keys used across the installer.
const (
	KeyPath    = "path"
	KeyChannel = "channel"
	KeyURL     = "url"
	KeyVersion = "version"
	KeyPlugin  = "plugin"
	KeyStep    = "step"

	// KeyAnnounce tags a record announcing a step that has not run yet.
	KeyAnnounce = "announce"
)

// Announce marks a record as the start of a step. The console prints it without a
// result marker.
func Announce() zap.Field { return zap.Bool(KeyAnnounce, true) }

// New returns a logger writing to console and, when logPath is non-empty, appending
// JSON records to logPath. The returned closer flushes and closes the file.
func New(console io.Writer, logPath string, verbose bool) (*zap.Logger, func() error, error) {
	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	sink := zapcore.AddSync(console)
	cores := []zapcore.Core{announceCore{
		Core:  zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(levelMarker)), sink, consoleLevel),
		plain: zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(announceMarker)), sink, consoleLevel),
	}}

	var file *os.File
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			zapcore.DebugLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closer := func() error {
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closer, nil
}

// OrNop returns logger, or a no-op logger when nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func consoleEncoderConfig(marker zapcore.LevelEncoder) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.StacktraceKey = ""
	cfg.EncodeLevel = marker
	return cfg
}

func announceMarker(_ zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("→")
}

// announceCore routes records carrying Announce to plain and everything else to the
// embedded core.
type announceCore struct {
	zapcore.Core
	plain zapcore.Core
}

func (c announceCore) With(fields []zapcore.Field) zapcore.Core {
	return announceCore{Core: c.Core.With(fields), plain: c.plain.With(fields)}
}

func (c announceCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c announceCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	for i, f := range fields {
		if f.Key != KeyAnnounce {
			continue
		}
		rest := make([]zapcore.Field, 0, len(fields)-1)
		rest = append(rest, fields[:i]...)
		rest = append(rest, fields[i+1:]...)
		return c.plain.Write(ent, rest)
	}
	return c.Core.Write(ent, fields)
}

// levelMarker renders the transcript markers the installer has always printed.
func levelMarker(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch {
	case level >= zapcore.ErrorLevel:
		enc.AppendString("❌")
	case level == zapcore.WarnLevel:
		enc.AppendString("⚠️")
	case level == zapcore.DebugLevel:
		enc.AppendString("·")
	default:
		enc.AppendString("✅")
	}
}
