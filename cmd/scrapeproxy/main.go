package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/scrapeproxy/internal/cmd"
	"github.com/jimezsa/scrapeproxy/internal/config"
	"github.com/jimezsa/scrapeproxy/internal/ui"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	// PROXY_* values may live in a local .env next to the scraper.
	_ = godotenv.Load()

	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("scrapeproxy"),
		kong.Description("Residential proxy settings for scrapers."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("SCRAPEPROXY_COLOR")), false)
		fallbackUI.Errorf("%v", err)
		os.Exit(1)
	}

	configPath := cli.Config
	if strings.TrimSpace(configPath) == "" {
		configPath = config.DefaultPath()
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	disableColor := cli.JSON || cli.Plain
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, disableColor)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	runCtx := &cmd.Context{
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		ConfigPath: configPath,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    versionString,
		ColorMode:  colorMode,
	}

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		os.Exit(1)
	}
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func applyEnvDefaults(cli *cmd.CLI) {
	if config.EnvBool("SCRAPEPROXY_JSON", false) {
		cli.JSON = true
	}
	if config.EnvBool("SCRAPEPROXY_VERBOSE", false) {
		cli.Verbose = true
	}
	if value := os.Getenv("SCRAPEPROXY_COLOR"); value != "" {
		cli.Color = value
	}
}
