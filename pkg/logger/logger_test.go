package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		if err := Init("warn", format); err != nil {
			t.Fatalf("Init(%s): %v", format, err)
		}
		if Get().Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("%s logger logs info at warn level", format)
		}
	}
}
