package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/pipeline"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	ContentFlags `embed:""`
	Output       string `short:"o" help:"Write the markup to this file instead of stdout (overrides output.file)" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	out, cfg, err := runOnce(context.Background(), g, root, r.ContentFlags)
	if err != nil {
		return err
	}

	target := cfg.Output.File
	if r.Output != "" {
		target = r.Output
	}
	if target == "" {
		_, err := fmt.Fprintln(g.Stdout, out.Markup)
		return err
	}
	return pipeline.WriteOutput(target, out.Markup, g.Logger)
}
