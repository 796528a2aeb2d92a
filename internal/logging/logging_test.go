package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupFallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	closeFn, err := Setup("debug", "", &buf)
	require.NoError(t, err)
	defer closeFn()
	defer log.SetOutput(io.Discard)

	log.WithField("index", 3).Debug("Toggled like")

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Toggled like")
	assert.Contains(t, buf.String(), "index=3")
}

func TestSetupFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "feed.log")
	closeFn, err := Setup("", p, io.Discard)
	require.NoError(t, err)

	log.Info("Refreshing feed")
	require.NoError(t, closeFn())
	log.SetOutput(io.Discard)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Refreshing feed")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestSetupBadLevel(t *testing.T) {
	_, err := Setup("loud", "", io.Discard)
	assert.ErrorIs(t, err, ErrLevel)
}

func TestSetupUnopenableFile(t *testing.T) {
	_, err := Setup("info", filepath.Join(t.TempDir(), "missing", "app.log"), io.Discard)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLevel)
	assert.Contains(t, err.Error(), "open log file")
}
