package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type LogLevel string

var (
	GlobalLogLevel LogLevel = LogLevelInfo

	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Configure swaps the process-wide writer. Format "json" writes structured
// lines, anything else writes the colored console format.
func Configure(level LogLevel, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(format, "json") {
		base = zerolog.New(out).With().Timestamp().Logger()
	} else {
		base = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger()
	}
	GlobalLogLevel = level
}

type Log struct {
	level  LogLevel
	err    error
	fields map[string]interface{}
}

func New() *Log {
	return &Log{
		level: GlobalLogLevel,
	}
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, err: err, fields: l.fields}
}

// WithField attaches a key/value pair to every line written through the
// returned logger.
func (l *Log) WithField(key string, value interface{}) *Log {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Log{level: l.level, err: l.err, fields: fields}
}

func (l *Log) zlog() zerolog.Logger {
	return base.Level(toZerolog(l.level))
}

func (l *Log) write(e *zerolog.Event, msg string) {
	if l.err != nil {
		e = e.Err(l.err)
	}
	if len(l.fields) > 0 {
		e = e.Fields(l.fields)
	}
	e.Msg(msg)
}

func (l *Log) Debug(msg string) {
	z := l.zlog()
	l.write(z.Debug(), msg)
}

func (l *Log) Info(msg string) {
	z := l.zlog()
	l.write(z.Info(), msg)
}

func (l *Log) Warn(msg string) {
	z := l.zlog()
	l.write(z.Warn(), msg)
}

func (l *Log) Error(msg string) {
	z := l.zlog()
	l.write(z.Error(), msg)
}

// Elapsed logs msg at info level together with the time spent since start.
func (l *Log) Elapsed(start time.Time, msg string) {
	l.WithField("elapsed_ms", time.Since(start).Milliseconds()).Info(msg)
}

func toZerolog(level LogLevel) zerolog.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
