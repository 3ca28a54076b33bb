// Package proxy resolves residential proxy settings and renders them in
// the shapes scraping clients consume.
package proxy

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultProvider         = ProviderBrightData
	DefaultStickyTTLMinutes = 10

	sessionIDLength = 12
)

// Settings are the caller-supplied inputs of a Config.
type Settings struct {
	Provider         string
	Host             string
	Port             int
	Username         string
	Password         string
	Country          string
	Sticky           bool
	StickyTTLMinutes int
	Enabled          bool
}

// DefaultSettings returns an enabled, sticky Bright Data configuration
// with no credentials.
func DefaultSettings() Settings {
	return Settings{
		Provider:         DefaultProvider,
		Sticky:           true,
		StickyTTLMinutes: DefaultStickyTTLMinutes,
		Enabled:          true,
	}
}

// Config holds resolved proxy settings and the current sticky session id.
//
// A Config is not safe for concurrent use when Rotate is called: callers
// sharing one instance across workers must serialize Rotate against reads.
type Config struct {
	settings  Settings
	sessionID string
	logger    zerolog.Logger
}

// New builds a Config from s. Provider and country are normalized and a
// missing host or port is taken from the provider table.
func New(s Settings, logger zerolog.Logger) *Config {
	s.Provider = normalize(s.Provider)
	s.Country = normalize(s.Country)

	if p, ok := providers[s.Provider]; ok {
		if s.Host == "" {
			s.Host = p.Host
		}
		if s.Port == 0 {
			s.Port = p.Port
		}
	}

	return &Config{
		settings:  s,
		sessionID: newSessionID(),
		logger:    logger,
	}
}

// Disabled returns a Config whose outputs are always empty.
func Disabled(logger zerolog.Logger) *Config {
	s := DefaultSettings()
	s.Enabled = false
	return New(s, logger)
}

func newSessionID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:sessionIDLength]
}

// Settings returns the resolved settings.
func (c *Config) Settings() Settings {
	return c.settings
}

// Enabled reports whether the proxy is switched on.
func (c *Config) Enabled() bool {
	return c.settings.Enabled
}

// SessionID returns the token embedded in sticky usernames.
func (c *Config) SessionID() string {
	return c.sessionID
}

// Rotate replaces the session id so the next request is routed through a
// different upstream IP. It returns the new id.
func (c *Config) Rotate() string {
	id, _ := c.RotateWith(nil)
	return id
}

// RotateWith draws a new session id and passes the resulting gateway URL
// (nil when there is no proxy) to apply. The id is committed only when
// apply returns nil; otherwise the current session is kept and returned
// along with the error.
func (c *Config) RotateWith(apply func(*url.URL) error) (string, error) {
	next := *c
	next.sessionID = newSessionID()
	if apply != nil {
		if err := apply(next.ProxyURL()); err != nil {
			return c.sessionID, err
		}
	}
	c.sessionID = next.sessionID
	c.logger.Info().Str("session", c.sessionID).Msg("proxy session rotated")
	return c.sessionID, nil
}

// ProxyUsername returns the username in the provider's format.
func (c *Config) ProxyUsername() string {
	s := c.settings
	p, ok := providers[s.Provider]
	if !ok || p.Separator == "" {
		return s.Username
	}

	parts := []string{s.Username}
	if s.Country != "" {
		parts = append(parts, "country-"+s.Country)
	}
	if s.Sticky {
		parts = append(parts, "session-"+c.sessionID)
		if p.SessionTime {
			parts = append(parts, "sessTime-"+strconv.Itoa(s.StickyTTLMinutes))
		}
	}
	return strings.Join(parts, p.Separator)
}

// active reports whether the outputs carry a proxy.
func (c *Config) active() bool {
	return c.settings.Enabled && c.settings.Host != ""
}

func (c *Config) hostPort() string {
	return fmt.Sprintf("%s:%d", c.settings.Host, c.settings.Port)
}

// PlaywrightProxy is the proxy option of a browser context.
type PlaywrightProxy struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RequestsProxy maps URL schemes to proxy URLs.
type RequestsProxy map[string]string

// PlaywrightProxy returns the browser-automation descriptor, or nil when
// the proxy is disabled or has no host.
func (c *Config) PlaywrightProxy() *PlaywrightProxy {
	if !c.active() {
		return nil
	}
	return &PlaywrightProxy{
		Server:   "http://" + c.hostPort(),
		Username: c.ProxyUsername(),
		Password: c.settings.Password,
	}
}

// RequestsProxy returns the per-scheme proxy map, or nil when the proxy is
// disabled or has no host. Both schemes share the same plain-HTTP gateway
// URL. Credentials are written verbatim.
func (c *Config) RequestsProxy() RequestsProxy {
	if !c.active() {
		return nil
	}
	u := fmt.Sprintf("http://%s:%s@%s", c.ProxyUsername(), c.settings.Password, c.hostPort())
	return RequestsProxy{"http": u, "https": u}
}

// ProxyURL returns the gateway URL with escaped credentials, or nil when
// there is no proxy.
func (c *Config) ProxyURL() *url.URL {
	if !c.active() {
		return nil
	}
	return &url.URL{
		Scheme: "http",
		User:   url.UserPassword(c.ProxyUsername(), c.settings.Password),
		Host:   c.hostPort(),
	}
}

// Info returns a one-line summary for logs.
func (c *Config) Info() string {
	s := c.settings
	if !s.Enabled {
		return "<ProxyConfig disabled>"
	}
	country := s.Country
	if country == "" {
		country = "any"
	}
	return fmt.Sprintf("<ProxyConfig provider=%s enabled host=%s country=%s sticky=%t session=%s>",
		s.Provider, c.hostPort(), country, s.Sticky, c.sessionID)
}

func (c *Config) String() string {
	return c.Info()
}
