package util

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"testing"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevel(nil))
	assert.Equal(t, slog.LevelError, LogLevel(errors.New("fail")))
}
