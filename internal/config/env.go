package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by the proxy settings.
const (
	EnvEnabled   = "PROXY_ENABLED"
	EnvProvider  = "PROXY_PROVIDER"
	EnvHost      = "PROXY_HOST"
	EnvPort      = "PROXY_PORT"
	EnvUsername  = "PROXY_USERNAME"
	EnvPassword  = "PROXY_PASSWORD"
	EnvCountry   = "PROXY_COUNTRY"
	EnvSticky    = "PROXY_STICKY"
	EnvStickyTTL = "PROXY_STICKY_TTL"
)

// EnvString returns the trimmed value of key, or fallback when unset or blank.
func EnvString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// EnvInt parses key as a base-10 integer. Unset or malformed values yield
// fallback.
func EnvInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

// EnvBool treats "true", "1" and "yes" (any case) as true and any other
// set value as false. Unset or blank yields fallback.
func EnvBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return ParseBool(val)
}

// ParseBool reports whether value is one of the accepted truthy strings.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
