package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout written at the start of every file log line.
const TimeLayout = "2006-01-02 15:04:05,000"

// Logger wraps the zap logger with additional functionality
type Logger struct {
	*zap.Logger
	closer io.Closer
}

// NewLogger creates an INFO level console logger writing to w, used before
// the log file is available. Entries share the file logger layout.
func NewLogger(w io.Writer) *Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(FileEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(zapcore.InfoLevel),
	)

	return &Logger{
		Logger: zap.New(core),
		closer: nil,
	}
}

// NewFileLogger creates an INFO level logger appending to the file at path.
// Each entry is written as "<time> - <LEVEL> - <message>".
func NewFileLogger(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(FileEncoderConfig()),
		zapcore.AddSync(file),
		zap.NewAtomicLevelAt(zapcore.InfoLevel),
	)

	return &Logger{
		Logger: zap.New(core),
		closer: file,
	}, nil
}

// NewWithZap wraps an existing zap logger. The caller keeps ownership of
// whatever sink the zap logger writes to.
func NewWithZap(zapLogger *zap.Logger) *Logger {
	return &Logger{
		Logger: zapLogger,
		closer: nil,
	}
}

// FileEncoderConfig returns the encoder configuration used by file loggers.
func FileEncoderConfig() zapcore.EncoderConfig {
	//nolint:exhaustruct // empty keys are omitted by the encoder
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      LevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	}
}

// LevelEncoder writes levels in upper case, spelling out WARNING.
func LevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == zapcore.WarnLevel {
		enc.AppendString("WARNING")

		return
	}

	enc.AppendString(level.CapitalString())
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}

// Close flushes the logger and releases the underlying file, if any.
func (l *Logger) Close() error {
	syncErr := l.Sync()

	if l.closer != nil {
		if err := l.closer.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}

		l.closer = nil
	}

	return syncErr
}
