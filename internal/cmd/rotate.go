package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

type RotateCmd struct {
	SourceOptions
	Count int `help:"Number of sessions to generate." default:"1"`
}

type rotation struct {
	Session  string `json:"session"`
	Username string `json:"username"`
}

func (r *RotateCmd) Run(ctx *Context) error {
	if r.Count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	cfg, err := ctx.loadProxy(r.Source)
	if err != nil {
		return err
	}
	if !cfg.Enabled() {
		ctx.UI.Warnf("proxy is disabled; usernames are not used")
	}

	rotations := make([]rotation, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		session := cfg.Rotate()
		rotations = append(rotations, rotation{Session: session, Username: cfg.ProxyUsername()})
	}
	return writeRotations(ctx, rotations)
}

func writeRotations(ctx *Context, rotations []rotation) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rotations)
	}

	if ctx.PlainText {
		for _, rot := range rotations {
			fmt.Fprintln(ctx.Out, strings.Join([]string{rot.Session, rot.Username}, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "session\tusername")
	for _, rot := range rotations {
		fmt.Fprintf(tw, "%s\t%s\n", rot.Session, rot.Username)
	}
	return tw.Flush()
}
