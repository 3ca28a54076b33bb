package network

import (
	"errors"
	"math/rand"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/jimezsa/scrapeproxy/internal/proxy"
)

var ErrNoProxy = errors.New("proxy is disabled or has no host")

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Client is a browser-fingerprinted HTTP client routed through a
// residential proxy.
type Client struct {
	http       tls_client.HttpClient
	proxy      *proxy.Config
	userAgents []string
	rand       *rand.Rand
}

func NewClient(cfg *proxy.Config, timeout time.Duration) (*Client, error) {
	proxyURL := cfg.ProxyURL()
	if proxyURL == nil {
		return nil, ErrNoProxy
	}

	jar, _ := fhttpcookiejar.New(nil)

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithCookieJar(jar),
		tls_client.WithProxyUrl(proxyURL.String()),
	)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Client{
		http:       client,
		proxy:      cfg,
		userAgents: append([]string{}, userAgents...),
		rand:       rng,
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}
	return c.http.Do(req)
}

// Proxy returns the proxy URL the client currently dials through.
func (c *Client) Proxy() string {
	return c.http.GetProxy()
}

// Rotate starts a new sticky session and points the client at it.
// Cookies from the previous session are kept. When the client cannot be
// repointed the proxy config keeps its previous session.
func (c *Client) Rotate() (string, error) {
	return c.proxy.RotateWith(func(proxyURL *url.URL) error {
		if proxyURL == nil {
			return ErrNoProxy
		}
		return c.http.SetProxy(proxyURL.String())
	})
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
