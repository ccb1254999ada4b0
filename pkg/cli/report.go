package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/optics-lab/optics/pkg/cli/config"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/report"
	"github.com/optics-lab/optics/pkg/usecase"
	"github.com/optics-lab/optics/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:      "report",
		Usage:     "Print the status report of a project",
		ArgsUsage: "<project>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one project name is required")
			}
			project := c.Args().First()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			r, err := uc.BuildReport(ctx, project)
			if err != nil {
				return err
			}

			renderReport(os.Stdout, r)
			return nil
		},
	}
}

func statusColor(s types.HealthStatus) *color.Color {
	switch s {
	case types.HealthStatusGreen:
		return color.New(color.FgGreen, color.Bold)
	case types.HealthStatusYellow:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func renderReport(w io.Writer, r *report.Report) {
	title := color.New(color.Bold, color.Underline)
	heading := color.New(color.Bold)
	faint := color.New(color.Faint)

	title.Fprintf(w, "%s\n", r.ProjectName)
	statusColor(r.OverallStatus).Fprintf(w, "%s", r.OverallStatus)
	fmt.Fprintf(w, "  %d%% complete, %.0f story points\n", r.ProgressPercent, r.TotalStoryPoints)

	if r.ProgramManager != "" {
		fmt.Fprintf(w, "Program Manager: %s\n", r.ProgramManager)
	}
	if r.ProjectManager != "" {
		fmt.Fprintf(w, "Project Manager: %s\n", r.ProjectManager)
	}
	if r.EndDate != nil {
		fmt.Fprintf(w, "Target end: %s\n", r.EndDate.Format("2006-01-02"))
	}
	if r.LastModified != nil {
		faint.Fprintf(w, "Last activity: %s\n", r.LastModified.Format(time.RFC3339))
	}

	if r.Description != "" {
		fmt.Fprintf(w, "\n%s\n", r.Description)
	}

	if len(r.Milestones) > 0 {
		heading.Fprintf(w, "\nMilestones\n")
		for _, m := range r.Milestones {
			due := "no target date"
			if m.TargetDate != nil {
				due = m.TargetDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "  [%d] %s (%s)\n", m.ID, m.Name, due)
		}
	}

	if len(r.WatchList) > 0 {
		heading.Fprintf(w, "\nWatch list\n")
		for _, e := range r.WatchList {
			fmt.Fprintf(w, "  [%d] %s: %s (owner: %s)\n", e.ID, e.Type, e.Title, e.Owner)
		}
	}

	if r.Accomplishments != "" {
		heading.Fprintf(w, "\nAccomplishments\n")
		fmt.Fprintf(w, "%s\n", r.Accomplishments)
	}
	if r.LookAhead != "" {
		heading.Fprintf(w, "\nLook ahead\n")
		fmt.Fprintf(w, "%s\n", r.LookAhead)
	}
}
