package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	ContentFlags `embed:""`
	Quiet        bool `short:"q" help:"Only print the summary line"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	out, _, err := runOnce(context.Background(), g, root, c.ContentFlags)
	if err != nil {
		return err
	}
	report := out.Report

	if !c.Quiet {
		w := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
		for _, url := range report.Included {
			_, _ = fmt.Fprintf(w, "included\t%s\t\n", url)
		}
		for _, ex := range report.Excluded {
			_, _ = fmt.Fprintf(w, "excluded\t%s\t%s %q\n", ex.URL, ex.Rule, ex.Entry)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(g.Stdout, "%d pages included, %d excluded (build %s)\n",
		len(report.Included), len(report.Excluded), report.BuildID)
	return err
}
