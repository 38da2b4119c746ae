package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-playtune/config"
	"go-playtune/output"
)

func TestPlainRenderHonorsPlainConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Plain = true
	cfg.PCM.Path = filepath.Join(t.TempDir(), "out.pcm")

	out, err := output.New(config.OutputPCM, cfg)
	require.NoError(t, err)
	defer out.Close()

	assert.True(t, plainRender(cfg, out, true))
}

func TestPlainRenderSkipsViewWithoutTTY(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PCM.Path = filepath.Join(t.TempDir(), "out.pcm")

	out, err := output.New(config.OutputPCM, cfg)
	require.NoError(t, err)
	defer out.Close()

	assert.True(t, plainRender(cfg, out, false))
}

func TestPlainRenderProtectsStdoutBackends(t *testing.T) {
	base := config.DefaultConfig()

	toFile := config.DefaultConfig()
	toFile.PCM.Path = filepath.Join(t.TempDir(), "out.pcm")

	printing := config.DefaultConfig()
	printing.Beep.Print = true

	tests := []struct {
		name    string
		backend string
		cfg     *config.Config
		plain   bool
	}{
		{"pcm to stdout", config.OutputPCM, base, true},
		{"pcm to a file", config.OutputPCM, toFile, false},
		{"dummy trace", config.OutputDummy, base, true},
		{"beep echoing command lines", config.OutputBeep, printing, true},
		{"beep running silently", config.OutputBeep, base, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := output.New(tt.backend, tt.cfg)
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, tt.plain, plainRender(tt.cfg, out, true))
		})
	}
}
