package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/biaslens/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{"production json", config.LoggingConfig{Level: "info", Format: "json"}, false},
		{"development console", config.LoggingConfig{Level: "debug", Format: "console", Development: true}, false},
		{"empty format defaults to json", config.LoggingConfig{Level: "warn"}, false},
		{"bad level", config.LoggingConfig{Level: "loud"}, true},
		{"bad format", config.LoggingConfig{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewNop()
	assert.Same(t, logger, OrNop(logger))
}

func TestNewObserved(t *testing.T) {
	logger, logs := NewObserved(zapcore.DebugLevel)
	logger.Warn("something happened", zap.String("key", "value"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "something happened", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}
