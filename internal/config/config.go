package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "config"
	ConfigFileName = "scraper_config.json"

	// PathEnv overrides the config file location.
	PathEnv = "SCRAPEPROXY_CONFIG"
)

var ErrEmptyConfig = errors.New("config file is empty")

// File is the scraper config document. Only the proxy section is read.
type File struct {
	Proxy *ProxySection `json:"proxy,omitempty"`
}

// ProxySection mirrors the "proxy" object of the config document.
type ProxySection struct {
	Enabled          bool   `json:"enabled"`
	Provider         string `json:"provider"`
	Host             string `json:"host"               validate:"omitempty,hostname|ip"`
	Port             int    `json:"port"               validate:"gte=0,lte=65535"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Country          string `json:"country"            validate:"omitempty,alpha"`
	Sticky           bool   `json:"sticky"`
	StickyTTLMinutes int    `json:"sticky_ttl_minutes" validate:"gte=0"`
}

// DefaultSection holds the values used for keys missing from the proxy
// section. Enabled stays false so an incomplete section is inert.
func DefaultSection() ProxySection {
	return ProxySection{
		Provider:         "brightdata",
		Sticky:           true,
		StickyTTLMinutes: 10,
	}
}

// Validate checks field ranges and formats of the proxy section.
func (s ProxySection) Validate() error {
	return validator.New().Struct(s)
}

// DefaultPath returns the config file location, honouring PathEnv.
func DefaultPath() string {
	if env := strings.TrimSpace(os.Getenv(PathEnv)); env != "" {
		return env
	}
	return filepath.Join(DirName, ConfigFileName)
}

// Load reads and decodes the document at path. File.Proxy is nil when the
// document has no proxy section.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, ErrEmptyConfig
	}

	var root map[string]any
	if err := json5.Unmarshal(data, &root); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, ok := root["proxy"]; !ok {
		return File{}, nil
	}

	section := DefaultSection()
	file := File{Proxy: &section}
	if err := json5.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	// "sticky": null means off, not the default.
	if raw, ok := root["proxy"].(map[string]any); ok {
		if v, set := raw["sticky"]; set && v == nil && file.Proxy != nil {
			file.Proxy.Sticky = false
		}
	}
	return file, nil
}

// Init writes a default config document at path if none exists. It
// reports whether a file was created.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}

	section := DefaultSection()
	if err := writeConfig(path, File{Proxy: &section}); err != nil {
		return false, err
	}
	return true, nil
}

func writeConfig(path string, file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	// Credentials may end up in this file.
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
