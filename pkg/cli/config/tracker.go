package config

import (
	"log/slog"

	"github.com/optics-lab/optics/pkg/service/ado"
	"github.com/urfave/cli/v3"
)

// Tracker holds CLI flags for the upstream work item tracker.
type Tracker struct {
	orgURL string
	pat    string
}

func (x *Tracker) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tracker-org-url",
			Usage:       "Tracker organization URL (e.g., https://dev.azure.com/your-org)",
			Category:    "Tracker",
			Destination: &x.orgURL,
			Sources:     cli.EnvVars("OPTICS_TRACKER_ORG_URL"),
		},
		&cli.StringFlag{
			Name:        "tracker-pat",
			Usage:       "Tracker personal access token",
			Category:    "Tracker",
			Destination: &x.pat,
			Sources:     cli.EnvVars("OPTICS_TRACKER_PAT"),
		},
	}
}

func (x Tracker) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("org-url", x.orgURL),
		slog.Int("pat.len", len(x.pat)),
	)
}

// IsConfigured reports whether both the organization URL and the token
// are present.
func (x *Tracker) IsConfigured() bool {
	return x.orgURL != "" && x.pat != ""
}

// Configure builds the tracker client, or returns nil when the flags
// are absent so the server can run on stored snapshots alone.
func (x *Tracker) Configure() (*ado.Client, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	return ado.New(x.orgURL, x.pat)
}
