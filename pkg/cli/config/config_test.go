package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/optics-lab/optics/pkg/cli/config"
)

func writeWorkspace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWorkspaceConfigure(t *testing.T) {
	var w config.Workspace
	w.SetPath(writeWorkspace(t, `
velocity_sprints = 8
sync_interval = "30m"

[[project]]
name = "Nexus"

[[project]]
name = "Atlas"
`))

	gt.NoError(t, w.Configure())
	gt.Array(t, w.ProjectNames()).Equal([]string{"Nexus", "Atlas"})
	gt.Value(t, w.VelocitySprints).Equal(8)

	interval, err := w.Interval()
	gt.NoError(t, err)
	gt.Value(t, interval).Equal(30 * time.Minute)
}

func TestWorkspaceDefaults(t *testing.T) {
	var w config.Workspace
	gt.NoError(t, w.Configure())
	gt.Array(t, w.ProjectNames()).Length(0)

	interval, err := w.Interval()
	gt.NoError(t, err)
	gt.Value(t, interval).Equal(15 * time.Minute)
}

func TestWorkspaceValidate(t *testing.T) {
	t.Run("duplicate project", func(t *testing.T) {
		var w config.Workspace
		w.SetPath(writeWorkspace(t, `
[[project]]
name = "Nexus"

[[project]]
name = "Nexus"
`))
		gt.Error(t, w.Configure())
	})

	t.Run("empty project name", func(t *testing.T) {
		var w config.Workspace
		w.SetPath(writeWorkspace(t, `
[[project]]
name = ""
`))
		gt.Error(t, w.Configure())
	})

	t.Run("bad interval", func(t *testing.T) {
		var w config.Workspace
		w.SetPath(writeWorkspace(t, `sync_interval = "soon"`))
		gt.Error(t, w.Configure())
	})
}

func TestTrackerConfigure(t *testing.T) {
	t.Run("unconfigured returns nil client", func(t *testing.T) {
		var tr config.Tracker
		gt.B(t, tr.IsConfigured()).False()

		client, err := tr.Configure()
		gt.NoError(t, err)
		gt.B(t, client == nil).True()
	})

	t.Run("configured builds client", func(t *testing.T) {
		var tr config.Tracker
		tr.SetCredentials("https://dev.azure.com/acme", "pat-value")
		gt.B(t, tr.IsConfigured()).True()

		client, err := tr.Configure()
		gt.NoError(t, err)
		gt.B(t, client != nil).True()
	})
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var l config.Logger
		closer, err := l.Configure()
		gt.NoError(t, err)
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		l := config.NewLogger("loud", "console", "stdout")
		_, err := l.Configure()
		gt.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "optics.log")
		l := config.NewLogger("info", "json", path)
		closer, err := l.Configure()
		gt.NoError(t, err)
		closer()

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected log file to be created: %v", err)
		}
	})
}
