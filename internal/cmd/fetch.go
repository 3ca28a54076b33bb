package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/scrapeproxy/internal/network"
)

type FetchCmd struct {
	SourceOptions
	URL     string `arg:"" optional:"" help:"Target URL." default:"https://geo.brdtest.com/mygeo.json"`
	Timeout int    `help:"Timeout in seconds." default:"15"`
	Rotate  bool   `help:"Rotate the session before the request."`
}

func (f *FetchCmd) Run(ctx *Context) error {
	if f.Timeout < 1 {
		return fmt.Errorf("--timeout must be at least 1")
	}
	cfg, err := ctx.loadProxy(f.Source)
	if err != nil {
		return err
	}

	timeout := time.Duration(f.Timeout) * time.Second
	client, err := network.NewClient(cfg, timeout)
	if err != nil {
		return fmt.Errorf("%w (%s)", err, cfg.Info())
	}
	if f.Rotate {
		if _, err := client.Rotate(); err != nil {
			return fmt.Errorf("rotate: %w", err)
		}
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ctx.Logger.Debug().Str("url", f.URL).Str("session", cfg.SessionID()).Msg("fetching through proxy")
	page, err := network.Fetch(reqCtx, client, f.URL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", f.URL, err)
	}
	return writePage(ctx, page)
}

func writePage(ctx *Context, page *network.Page) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	if ctx.PlainText {
		line := []string{page.URL, fmt.Sprintf("%d", page.Status), fmt.Sprintf("%d", page.LatencyMS), page.Session, page.Title}
		_, err := fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		return err
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "url\tstatus\tlatency_ms\tsession\ttitle")
	fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", page.URL, page.Status, page.LatencyMS, page.Session, page.Title)
	return tw.Flush()
}
