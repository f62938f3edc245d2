package mapcache_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fblackburn/mapcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := mapcache.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	l.Debug("hidden", "k", 1)
	l.Info("shown", "k", 2)
	l.Warn("careful")
	l.Error("broken", "err", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown k=2")
	assert.Contains(t, out, "level=WARN msg=careful")
	assert.Contains(t, out, "err=boom")
}

func TestSlogLogger_CodecWarnsOnFailure(t *testing.T) {
	var buf bytes.Buffer
	l := mapcache.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	c := mapcache.New(mapcache.Config{Logger: l})

	_, _, err := c.Unmarshal([]byte(`{"grid":["  "],"data":{}}`))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "utfgrid decoded")

	_, _, err = c.Unmarshal([]byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "utfgrid decode failed")
}

func TestSlogLogger_NilUsesDefault(t *testing.T) {
	assert.NotNil(t, mapcache.NewSlogLogger(nil))
}

func TestVersion(t *testing.T) {
	assert.Equal(t, mapcache.BuildDate+"-"+mapcache.BuildEnv, mapcache.Version())
}
