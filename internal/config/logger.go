package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// LoggerConfig configures one log destination.
type LoggerConfig struct {
	// Level is one of "none", "normal" or "debug"
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Destination is the log file path (file logger only)
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`

	// Mode is "append" or "overwrite" (file logger only)
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// LoggingConfig holds console and file logger settings.
type LoggingConfig struct {
	Console LoggerConfig `json:"console" yaml:"console"`
	File    LoggerConfig `json:"file" yaml:"file"`
}

// EnableColorOutput reports whether stream is a terminal that can show colored levels.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// levelFor maps a configured level name to a zap level. ok is false for "none" and unknown names.
func levelFor(name string) (zapcore.Level, bool) {
	switch name {
	case "debug":
		return zapcore.DebugLevel, true
	case "normal":
		return zapcore.InfoLevel, true
	}
	return zapcore.InvalidLevel, false
}

// Prepare builds the program logger.
//
// Everything goes to stderr: stdout carries command output and, in server
// mode, the MCP stdio transport.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	consoleCore := zapcore.NewNopCore()
	if lvl, ok := levelFor(conf.Console.Level); ok {
		consoleCore = zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(lvl))
	}

	fileCore := zapcore.NewNopCore()
	if lvl, ok := levelFor(conf.File.Level); ok && conf.File.Destination != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if conf.File.Mode == "append" {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(conf.File.Destination, flags, 0644)
		if err != nil {
			return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.File.Destination, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), zap.NewAtomicLevelAt(lvl))
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller()).Named("iconforge"), nil
}
