package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Workspace is the optional TOML file narrowing the portfolio: the
// projects to sync and the chart tuning knobs. Without a file every
// non-archived project the tracker lists is synced.
type Workspace struct {
	Projects        []WorkspaceProject `toml:"project"`
	VelocitySprints int                `toml:"velocity_sprints"`
	SyncInterval    string             `toml:"sync_interval"`

	path string
}

// WorkspaceProject pins one project in the workspace.
type WorkspaceProject struct {
	Name string `toml:"name"`
}

// Flags returns CLI flags for workspace configuration
func (w *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to workspace configuration file (TOML)",
			Sources:     cli.EnvVars("OPTICS_CONFIG"),
			Destination: &w.path,
		},
	}
}

// Validate checks the parsed workspace for duplicate or empty entries.
func (w *Workspace) Validate() error {
	seen := make(map[string]bool)
	for _, p := range w.Projects {
		if p.Name == "" {
			return goerr.New("project name is required in workspace config")
		}
		if seen[p.Name] {
			return goerr.New("duplicate project in workspace config", goerr.V("name", p.Name))
		}
		seen[p.Name] = true
	}
	if w.VelocitySprints < 0 {
		return goerr.New("velocity_sprints must not be negative", goerr.V("value", w.VelocitySprints))
	}
	if _, err := w.Interval(); err != nil {
		return err
	}
	return nil
}

// Configure loads and validates the workspace file. Without a --config
// flag the zero workspace is returned.
func (w *Workspace) Configure() error {
	if w.path == "" {
		return nil
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read workspace config", goerr.V("path", w.path))
	}
	if err := toml.Unmarshal(data, w); err != nil {
		return goerr.Wrap(err, "failed to parse workspace config", goerr.V("path", w.path))
	}
	return w.Validate()
}

// ProjectNames returns the pinned project names, empty when the
// workspace leaves the portfolio open.
func (w *Workspace) ProjectNames() []string {
	names := make([]string, 0, len(w.Projects))
	for _, p := range w.Projects {
		names = append(names, p.Name)
	}
	return names
}

// Interval parses the sync interval, defaulting to 15 minutes.
func (w *Workspace) Interval() (time.Duration, error) {
	if w.SyncInterval == "" {
		return 15 * time.Minute, nil
	}
	d, err := time.ParseDuration(w.SyncInterval)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid sync_interval", goerr.V("value", w.SyncInterval))
	}
	if d <= 0 {
		return 0, goerr.New("sync_interval must be positive", goerr.V("value", w.SyncInterval))
	}
	return d, nil
}
