package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// countingSyncer records how often the logger flushed it.
type countingSyncer struct {
	bytes.Buffer
	syncs int
}

func (s *countingSyncer) Sync() error {
	s.syncs++
	return nil
}

func TestFail_FlushesLoggerAndExitsNonZero(t *testing.T) {
	sink := &countingSyncer{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.DebugLevel)

	prevLogger, prevExit := cliLogger, osExit
	t.Cleanup(func() {
		cliLogger, osExit = prevLogger, prevExit
	})

	var exitCode int
	exited := false
	cliLogger = zap.New(core)
	osExit = func(code int) {
		exitCode = code
		exited = true
		assert.Equal(t, 1, sink.syncs, "logger must be flushed before exiting")
	}

	fail("❌ Failed to generate stats card", errors.New("non-200 OK status code: 401 Unauthorized"))

	assert.True(t, exited)
	assert.Equal(t, 1, exitCode)
}
