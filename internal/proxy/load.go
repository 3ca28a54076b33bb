package proxy

import (
	"os"

	"github.com/jimezsa/scrapeproxy/internal/config"
	"github.com/rs/zerolog"
)

// FromFile builds a Config from the proxy section of the config document
// at path. An absent section or a section without enabled=true yields a
// disabled Config. When the document cannot be read or decoded the error
// is logged and the environment is used instead.
func FromFile(path string, logger zerolog.Logger) *Config {
	file, err := config.Load(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not load proxy config, falling back to env")
		return FromEnv(logger)
	}

	section := file.Proxy
	if section == nil || !section.Enabled {
		return Disabled(logger)
	}

	return New(Settings{
		Provider:         section.Provider,
		Host:             section.Host,
		Port:             section.Port,
		Username:         firstNonEmpty(section.Username, os.Getenv(config.EnvUsername)),
		Password:         firstNonEmpty(section.Password, os.Getenv(config.EnvPassword)),
		Country:          firstNonEmpty(section.Country, os.Getenv(config.EnvCountry)),
		Sticky:           section.Sticky,
		StickyTTLMinutes: section.StickyTTLMinutes,
		Enabled:          true,
	}, logger)
}

// FromEnv builds a Config from the PROXY_* environment variables. Unless
// PROXY_ENABLED is truthy no other variable is read.
//
// Values are trimmed and a blank value counts as unset, so PROXY_PROVIDER=""
// selects brightdata and PROXY_STICKY="" keeps sessions sticky. Username and
// password are the exception: they are used exactly as set, as in FromFile.
func FromEnv(logger zerolog.Logger) *Config {
	if !config.EnvBool(config.EnvEnabled, false) {
		return Disabled(logger)
	}

	return New(Settings{
		Provider:         config.EnvString(config.EnvProvider, DefaultProvider),
		Host:             config.EnvString(config.EnvHost, ""),
		Port:             config.EnvInt(config.EnvPort, 0),
		Username:         os.Getenv(config.EnvUsername),
		Password:         os.Getenv(config.EnvPassword),
		Country:          config.EnvString(config.EnvCountry, ""),
		Sticky:           config.EnvBool(config.EnvSticky, true),
		StickyTTLMinutes: config.EnvInt(config.EnvStickyTTL, DefaultStickyTTLMinutes),
		Enabled:          true,
	}, logger)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
