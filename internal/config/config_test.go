package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GETTEXT_KEYWORD", "")
	t.Setenv("WORKER_COUNT", "")
	t.Setenv("OUTPUT_FORMAT", "")

	cfg := Load()
	assert.Equal(t, "gettext", cfg.Keyword)
	assert.Equal(t, "pot", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, "messages", cfg.Domain)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GETTEXT_KEYWORD", "_")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")

	cfg := Load()
	assert.Equal(t, "_", cfg.Keyword)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 10*1024*1024, cfg.MaxFileSize)
}
