package cmd

import (
	"github.com/jimezsa/scrapeproxy/internal/export"
)

type ShowCmd struct {
	SourceOptions
	View   string `help:"Descriptor to print: info, playwright, requests, all." enum:"info,playwright,requests,all" default:"info"`
	Format string `help:"Output format: table, json, tsv, env." enum:",table,json,tsv,env" default:""`
	Rotate bool   `help:"Rotate the session before printing."`
	Reveal bool   `help:"Print passwords in table and TSV output."`
}

func (s *ShowCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadProxy(s.Source)
	if err != nil {
		return err
	}
	if s.Rotate {
		cfg.Rotate()
	}

	view, err := export.ParseView(s.View)
	if err != nil {
		return err
	}
	format, err := ctx.outputFormat(s.Format)
	if err != nil {
		return err
	}
	return export.WriteReport(ctx.Out, export.NewReport(cfg), view, format, ctx.writeOptions(s.Reveal))
}
