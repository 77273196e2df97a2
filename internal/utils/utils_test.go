package utils

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")

	levels := map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"fatal": log.FatalLevel,
	}
	for name, want := range levels {
		SetLogLevel(name)
		if got := Log.GetLevel(); got != want {
			t.Errorf("SetLogLevel(%q): got %v, want %v", name, got, want)
		}
	}
}
