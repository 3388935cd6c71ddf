package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFiltersBelowWarnByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(false, &buf)
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "sigviz")
}

func TestNewDebugEmitsEverything(t *testing.T) {
	var buf bytes.Buffer
	log := New(true, &buf)
	log.Debug("recompute")
	_ = log.Sync()
	assert.Contains(t, buf.String(), "recompute")
}
