package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tferrors "github.com/vnykmshr/tickflow/pkg/common/errors"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
name: jobs
mode: Cron
task_timeout: 250ms
location: UTC
log:
  level: debug
  console: true
metrics:
  enabled: true
  namespace: myapp
  address: ":2112"
`))
	require.NoError(t, err)

	assert.Equal(t, "jobs", f.Name)
	assert.Equal(t, ModeCron, f.Mode)
	assert.Equal(t, "debug", f.Log.Level)
	assert.True(t, f.Log.Console)
	assert.Equal(t, ":2112", f.Metrics.Address)

	d, err := f.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	loc, err := f.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	mc := f.MetricsConfig()
	assert.True(t, mc.Enabled)
	assert.Equal(t, "myapp", mc.Namespace)
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "default", f.Name)
	assert.Equal(t, ModeLocal, f.Mode)
	assert.False(t, f.Metrics.Enabled)
	assert.Equal(t, "tickflow", f.MetricsConfig().Namespace)

	d, err := f.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown mode", "mode: epoll", "mode"},
		{"bad duration", "task_timeout: soon", "task_timeout"},
		{"negative duration", "task_timeout: -1s", "task_timeout"},
		{"empty name", `name: ""`, "name"},
		{"bad location", "location: Mars/Olympus", "location"},
		{"metrics without address", "metrics: {enabled: true, address: \"\"}", "metrics.address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var verr *tferrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("name: jobs\nintervall: 5s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intervall")
	assert.False(t, tferrors.IsValidationError(err))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nmode: gocron\n"), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", f.Name)
	assert.Equal(t, ModeGocron, f.Mode)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
