package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_RespectsDebugFlag(t *testing.T) {
	var quiet bytes.Buffer
	logger := New(&quiet, false)
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "shown")
	assert.Contains(t, quiet.String(), "key=value")
	assert.Contains(t, quiet.String(), Prefix)

	var verbose bytes.Buffer
	New(&verbose, true).Debug("visible")
	assert.Contains(t, verbose.String(), "visible")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}

func TestConfigure_ReusesLogger(t *testing.T) {
	var first, second bytes.Buffer
	logger := New(&first, false)

	Configure(logger, &second, true)
	logger.Debug("after")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "after")

	Configure(logger, &second, false)
	logger.Debug("quiet again")
	assert.NotContains(t, second.String(), "quiet again")
}
