package commands

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	ContentFlags `embed:""`
	Format       string `help:"Output format" enum:"text,json,yaml" default:"text"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	out, _, err := runOnce(context.Background(), g, root, t.ContentFlags)
	if err != nil {
		return err
	}

	switch t.Format {
	case "json":
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Tree.Entries())
	case "yaml":
		enc := yaml.NewEncoder(g.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out.Tree.Entries()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return out.Tree.WriteText(g.Stdout)
	}
}
