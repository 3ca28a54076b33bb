package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jimezsa/scrapeproxy/internal/config"
	"github.com/jimezsa/scrapeproxy/internal/proxy"
)

type ConfigCmd struct {
	Init  InitConfigCmd  `cmd:"" help:"Write a default config file."`
	Path  PathConfigCmd  `cmd:"" help:"Print config file path."`
	Check CheckConfigCmd `cmd:"" help:"Check the proxy section of the config file."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type CheckConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	created, err := config.Init(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if !created {
		ctx.UI.Infof("Config already exists at %s", ctx.ConfigPath)
		return nil
	}
	ctx.UI.Infof("Created: %s", ctx.ConfigPath)
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigPath)
	return err
}

func (c *CheckConfigCmd) Run(ctx *Context) error {
	result, err := checkConfig(ctx.ConfigPath)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		ctx.UI.Warnf("%s: %s", ctx.ConfigPath, warning)
	}
	if len(result.Problems) == 0 {
		ctx.UI.Successf("%s: ok", ctx.ConfigPath)
		return nil
	}
	for _, problem := range result.Problems {
		ctx.UI.Errorf("%s: %s", ctx.ConfigPath, problem)
	}
	return fmt.Errorf("%d problem(s) found", len(result.Problems))
}

// checkResult separates what makes the file unusable from notices such as
// a disabled proxy, which is a valid state.
type checkResult struct {
	Warnings []string
	Problems []string
}

// checkConfig inspects the proxy section at path. A missing or unreadable
// file is returned as an error.
func checkConfig(path string) (checkResult, error) {
	var result checkResult
	file, err := config.Load(path)
	if err != nil {
		return result, err
	}
	if file.Proxy == nil {
		result.Warnings = append(result.Warnings, "no proxy section; proxy is disabled")
		return result, nil
	}

	section := *file.Proxy
	if err := section.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Problems = append(result.Problems, fmt.Sprintf("proxy.%s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			result.Problems = append(result.Problems, err.Error())
		}
	}

	if !section.Enabled {
		result.Warnings = append(result.Warnings, "proxy.enabled is false; proxy is disabled")
		return result, nil
	}
	if _, known := proxy.LookupProvider(section.Provider); !known && section.Host == "" {
		result.Problems = append(result.Problems, fmt.Sprintf("custom provider %q needs an explicit host (known: %v)", section.Provider, proxy.Providers()))
	}
	if section.Username == "" && os.Getenv(config.EnvUsername) == "" {
		result.Problems = append(result.Problems, "no username in config or "+config.EnvUsername)
	}
	return result, nil
}
