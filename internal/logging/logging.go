// Package logging builds the process zerolog logger and adapts it to the
// record store's Logger interface.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing to w. Format is "console" (human
// readable, the default) or "json"; level is one of debug, info, warn, error
// or disabled.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	switch strings.ToLower(format) {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "eventdesk").Logger(), nil
}

// ParseLevel maps a config level name onto a zerolog level. Blank means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unsupported log level %q", level)
	}
}

// Adapter forwards msg, key, value, ... calls to a zerolog logger.
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps l.
func NewAdapter(l zerolog.Logger) *Adapter { return &Adapter{log: l} }

func (a *Adapter) Debug(msg string, keyvals ...any) { emit(a.log.Debug(), msg, keyvals) }
func (a *Adapter) Info(msg string, keyvals ...any)  { emit(a.log.Info(), msg, keyvals) }
func (a *Adapter) Warn(msg string, keyvals ...any)  { emit(a.log.Warn(), msg, keyvals) }
func (a *Adapter) Error(msg string, keyvals ...any) { emit(a.log.Error(), msg, keyvals) }

func emit(ev *zerolog.Event, msg string, keyvals []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		if i+1 == len(keyvals) {
			ev = ev.Interface(key, nil)
			break
		}
		switch v := keyvals[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		case time.Duration:
			ev = ev.Dur(key, v)
		case fmt.Stringer:
			ev = ev.Stringer(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
