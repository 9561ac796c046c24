package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const FormatPretty = "pretty"

// Logger is a zerolog.Logger bound to one service.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// Init builds the process-wide logger from cfg and points zerolog's global
// log at it.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	service := cfg.ServiceName
	if service == "" {
		service = "default"
	}
	SetGlobalLogger(New(cfg, service))
	log.Logger = global.zl
}

// New creates a logger writing to cfg.Output.
func New(cfg *Config, serviceName string) *Logger {
	out := io.Writer(os.Stdout)
	if strings.EqualFold(cfg.Output, "stderr") {
		out = os.Stderr
	}
	return NewWithWriter(cfg, serviceName, out)
}

// NewWithWriter creates a logger that writes to w. Formats other than
// console and pretty produce one JSON object per line.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case "console", FormatPretty:
		zl = zerolog.New(consoleWriter(cfg, serviceName, w))
	default:
		zl = zerolog.New(w).With().Str("service", serviceName).Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger(), service: serviceName}
}

// NewDefault is an info-level console logger on stdout.
func NewDefault(serviceName string) *Logger {
	return New(&Config{Level: "info", Format: "console", Output: "stdout", Timestamp: true}, serviceName)
}

// Nop discards everything.
func Nop() *Logger { return &Logger{zl: zerolog.Nop()} }

func (l *Logger) derive(fn func(zerolog.Context) zerolog.Context) *Logger {
	return &Logger{zl: fn(l.zl.With()).Logger(), service: l.service}
}

// WithContext adds the trace, span, request and run ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context {
		for _, k := range []contextKey{ctxTraceID, ctxSpanID, ctxRequestID, ctxRunID} {
			if v, _ := ctx.Value(k).(string); v != "" {
				zc = zc.Str(string(k), v)
			}
		}
		return zc
	})
}

func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(func(zc zerolog.Context) zerolog.Context { return zc.Str(FieldComponent, name) })
}

// GetLogger exposes the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger { return l.zl }

func (l *Logger) Debug(msg string, fields ...map[string]any) { emit(l.zl.Debug(), msg, fields) }

func (l *Logger) Info(msg string, fields ...map[string]any) { emit(l.zl.Info(), msg, fields) }

func (l *Logger) Warn(msg string, fields ...map[string]any) { emit(l.zl.Warn(), msg, fields) }

func (l *Logger) Error(msg string, fields ...map[string]any) { emit(l.zl.Error(), msg, fields) }

// Fatal logs and exits the process.
func (l *Logger) Fatal(msg string, fields ...map[string]any) { emit(l.zl.Fatal(), msg, fields) }

func emit(event *zerolog.Event, msg string, fields []map[string]any) {
	for _, fm := range fields {
		event.Fields(fm)
	}
	event.Msg(msg)
}

var global *Logger

// SetGlobalLogger replaces the logger used by the package-level helpers.
func SetGlobalLogger(l *Logger) { global = l }

// GetGlobalLogger returns the process-wide logger, creating a default one
// on first use.
func GetGlobalLogger() *Logger {
	if global == nil {
		global = NewDefault("default")
	}
	return global
}

func Info(msg string, fields ...map[string]any) { GetGlobalLogger().Info(msg, fields...) }

func Warn(msg string, fields ...map[string]any) { GetGlobalLogger().Warn(msg, fields...) }

// levelTags maps a zerolog level name to its console tag and ANSI color.
var levelTags = map[string][2]string{
	"debug": {"DBG", "36"},
	"info":  {"INF", "32"},
	"warn":  {"WRN", "33"},
	"error": {"ERR", "31"},
	"fatal": {"FTL", "35"},
}

// consoleWriter prints "[SVC][LVL] message key:value", the service tag being
// the first three letters of serviceName.
func consoleWriter(cfg *Config, serviceName string, w io.Writer) zerolog.ConsoleWriter {
	paint := func(color, s string) string {
		if cfg.NoColor {
			return s
		}
		return "\033[" + color + "m" + s + "\033[0m"
	}
	var svc string
	if len(serviceName) >= 3 && serviceName != "default" {
		svc = paint("34", "["+strings.ToUpper(serviceName[:3])+"]")
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i any) string {
			name := strings.ToLower(fmt.Sprint(i))
			tag, ok := levelTags[name]
			if !ok {
				return svc + "[" + strings.ToUpper(name) + "]"
			}
			return svc + paint(tag[1], "["+tag[0]+"]")
		},
		FormatFieldName: func(i any) string { return fmt.Sprintf("%s:", i) },
	}
}
