package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jimezsa/scrapeproxy/internal/export"
	"github.com/jimezsa/scrapeproxy/internal/proxy"
	"github.com/jimezsa/scrapeproxy/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	ConfigPath string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

const (
	SourceFile = "file"
	SourceEnv  = "env"
)

// SourceOptions selects where proxy settings are read from.
type SourceOptions struct {
	Source string `help:"Settings source: file (falls back to env) or env." enum:"file,env" default:"file"`
}

func (ctx *Context) loadProxy(source string) (*proxy.Config, error) {
	var cfg *proxy.Config
	switch strings.ToLower(strings.TrimSpace(source)) {
	case SourceFile, "":
		cfg = proxy.FromFile(ctx.ConfigPath, ctx.Logger)
	case SourceEnv:
		cfg = proxy.FromEnv(ctx.Logger)
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}
	ctx.Logger.Debug().Str("source", source).Msg(cfg.Info())
	return cfg, nil
}

func (ctx *Context) writeOptions(reveal bool) export.WriteOptions {
	return export.WriteOptions{
		ColorEnabled: ctx.UI != nil && ctx.UI.ColorEnabled,
		Reveal:       reveal,
	}
}

// outputFormat resolves the global --json/--plain flags, then the
// per-command format, then table.
func (ctx *Context) outputFormat(value string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "table":
		return export.FormatTable, nil
	case "json":
		return export.FormatJSON, nil
	case "tsv":
		return export.FormatTSV, nil
	case "env":
		return export.FormatEnv, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}
