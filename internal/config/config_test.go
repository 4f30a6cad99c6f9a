package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultSiteTitle, cfg.Site.Title)
	assert.Equal(t, OnErrorAbort, cfg.Generation.OnError)
	assert.True(t, cfg.Generation.RenderMarkdown())
	assert.False(t, cfg.Generation.VerifyLinks)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
site:
  title: Ashton Chronicle
generation:
  on_error: SKIP
  markdown_descriptions: false
  verify_links: true
logging:
  level: Debug
  format: json
metrics:
  textfile: metrics.prom
`))
	require.NoError(t, err)
	assert.Equal(t, "Ashton Chronicle", cfg.Site.Title)
	assert.Equal(t, OnErrorSkip, cfg.Generation.OnError)
	assert.False(t, cfg.Generation.RenderMarkdown())
	assert.True(t, cfg.Generation.VerifyLinks)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "metrics.prom", cfg.Metrics.Textfile)
}

func TestParse_InvalidPolicy(t *testing.T) {
	_, err := Parse([]byte("generation:\n  on_error: retry\n"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("site: [unclosed"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteTitle, cfg.Site.Title)
}

func TestInitRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Site, cfg.Site)
	assert.Equal(t, OnErrorAbort, cfg.Generation.OnError)
	assert.True(t, cfg.Generation.RenderMarkdown())

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: x\n"), 0o600))
	require.NoError(t, Init(path, true))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteTitle, cfg.Site.Title)
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)

	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: LogLevelError}.SlogLevel(true))
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: LogLevelError}.SlogLevel(false))
}
