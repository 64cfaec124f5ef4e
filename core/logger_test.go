package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		name  string
		env   string
		debug bool
		want  zapcore.Level
	}{
		{"dev", "dev", false, zapcore.InfoLevel},
		{"prod", "prod", false, zapcore.InfoLevel},
		{"debug logs", "prod", true, zapcore.DebugLevel},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Env = c.env
			cfg.DebugLogs = c.debug

			logger, err := NewLogger(cfg)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(c.want))
			assert.False(t, logger.Core().Enabled(c.want-1))
		})
	}
}
