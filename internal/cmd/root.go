package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config  string `help:"Path to the scraper config file." env:"SCRAPEPROXY_CONFIG" type:"path"`
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Show    ShowCmd    `cmd:"" default:"1" help:"Show the resolved proxy settings."`
	Rotate  RotateCmd  `cmd:"" help:"Rotate the sticky session and print the new usernames."`
	Fetch   FetchCmd   `cmd:"" help:"Fetch a URL through the configured proxy."`
	Cfg     ConfigCmd  `cmd:"" name:"config" help:"Manage configuration."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Out, "scrapeproxy %s\n", ctx.Version)
	return err
}
