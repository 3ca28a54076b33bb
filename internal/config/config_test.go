package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := `{
  // scraper settings live alongside the proxy section
  "headless": true,
  "proxy": {
    "enabled": true,
    "provider": "netnut",
    "port": 5959,
    "country": "us",
  },
}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Proxy == nil {
		t.Fatalf("expected proxy section")
	}
	got := *file.Proxy
	if !got.Enabled || got.Provider != "netnut" || got.Port != 5959 || got.Country != "us" {
		t.Fatalf("unexpected section: %+v", got)
	}
	if !got.Sticky || got.StickyTTLMinutes != 10 {
		t.Fatalf("missing keys should keep defaults: %+v", got)
	}
}

func TestLoadWithoutProxySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"scraper": {}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Proxy != nil {
		t.Fatalf("expected nil proxy section, got %+v", file.Proxy)
	}
}

func TestLoadStickyNull(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "null", content: `{"proxy": {"enabled": true, "sticky": null}}`, want: false},
		{name: "missing", content: `{"proxy": {"enabled": true}}`, want: true},
		{name: "false", content: `{"proxy": {"enabled": true, "sticky": false}}`, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			file, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if file.Proxy == nil || file.Proxy.Sticky != tc.want {
				t.Fatalf("Sticky = %+v, want %t", file.Proxy, tc.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) error = %v, want ErrNotExist", err)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrEmptyConfig) {
		t.Fatalf("Load(empty) error = %v, want ErrEmptyConfig", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"proxy": {`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(broken); err == nil {
		t.Fatalf("Load(broken) expected error")
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DirName, ConfigFileName)

	created, err := Init(path)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !created {
		t.Fatalf("expected config to be created")
	}

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Proxy == nil || file.Proxy.Enabled {
		t.Fatalf("default config should carry a disabled proxy section: %+v", file.Proxy)
	}
	if file.Proxy.Provider != "brightdata" {
		t.Fatalf("Provider = %q, want brightdata", file.Proxy.Provider)
	}

	created, err = Init(path)
	if err != nil {
		t.Fatalf("Init() (2nd) error = %v", err)
	}
	if created {
		t.Fatalf("Init() should not overwrite an existing file")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	if got, want := DefaultPath(), filepath.Join("config", "scraper_config.json"); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}

	t.Setenv(PathEnv, "/etc/scraper.json")
	if got := DefaultPath(); got != "/etc/scraper.json" {
		t.Fatalf("DefaultPath() = %q, want env override", got)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultSection()
	valid.Host = "brd.superproxy.io"
	valid.Port = 22225
	valid.Country = "us"
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cases := map[string]func(*ProxySection){
		"port range":   func(s *ProxySection) { s.Port = 70000 },
		"negative ttl": func(s *ProxySection) { s.StickyTTLMinutes = -1 },
		"country":      func(s *ProxySection) { s.Country = "u5" },
		"host":         func(s *ProxySection) { s.Host = "not a host" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			section := valid
			mutate(&section)
			if err := section.Validate(); err == nil {
				t.Fatalf("Validate() expected error for %+v", section)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SCRAPEPROXY_TEST_INT", " 42 ")
	if got := EnvInt("SCRAPEPROXY_TEST_INT", 0); got != 42 {
		t.Fatalf("EnvInt() = %d, want 42", got)
	}
	t.Setenv("SCRAPEPROXY_TEST_INT", "4x")
	if got := EnvInt("SCRAPEPROXY_TEST_INT", 7); got != 7 {
		t.Fatalf("EnvInt() = %d, want fallback 7", got)
	}

	t.Setenv("SCRAPEPROXY_TEST_STR", "  ")
	if got := EnvString("SCRAPEPROXY_TEST_STR", "def"); got != "def" {
		t.Fatalf("EnvString() = %q, want fallback", got)
	}

	for value, want := range map[string]bool{
		"true": true, "TRUE": true, "1": true, "Yes": true,
		"false": false, "0": false, "on": false, "y": false,
	} {
		t.Setenv("SCRAPEPROXY_TEST_BOOL", value)
		if got := EnvBool("SCRAPEPROXY_TEST_BOOL", !want); got != want {
			t.Fatalf("EnvBool(%q) = %v, want %v", value, got, want)
		}
	}
	t.Setenv("SCRAPEPROXY_TEST_BOOL", "")
	if !EnvBool("SCRAPEPROXY_TEST_BOOL", true) {
		t.Fatalf("EnvBool() should use fallback for blank values")
	}
}
