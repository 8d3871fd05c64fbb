package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	SourceFlags `embed:""`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	l.apply(cfg)

	p, err := newPipeline(g, cfg)
	if err != nil {
		return err
	}
	res, err := p.Compile()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tSLUG\tSECTION\tLAYOUT")
	for _, item := range res.Items {
		layout := item.Layout(p.DefaultLayout())
		if !p.Engine().Has(layout) {
			layout += " (missing)"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Path(), item.Slug(), item.Section(), layout)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "%d pages, %d files skipped\n", len(res.Items), len(res.Skipped))
	_, _ = fmt.Fprintf(g.Stdout, "Layouts from %s (%d), content extensions: %s\n",
		p.Engine().Dir(), len(p.Engine().Layouts()), strings.Join(p.Extensions().List(), ", "))
	return nil
}
