package proxy

import (
	"sort"
	"strings"
)

const (
	ProviderBrightData   = "brightdata"
	ProviderIPRoyal      = "iproyal"
	ProviderStormProxies = "stormproxies"
	ProviderNetNut       = "netnut"
)

// Provider describes a residential proxy service: its default gateway and
// how it expects targeting and session data in the proxy username.
type Provider struct {
	Name string
	Host string
	Port int

	// Separator joins username segments. Empty means the provider takes
	// the account username as-is.
	Separator string
	// SessionTime appends a sessTime-<minutes> segment to sticky sessions.
	SessionTime bool
}

var providers = map[string]Provider{
	ProviderBrightData: {
		Name:      ProviderBrightData,
		Host:      "brd.superproxy.io",
		Port:      22225,
		Separator: "-",
	},
	ProviderIPRoyal: {
		Name:        ProviderIPRoyal,
		Host:        "proxy.iproyal.com",
		Port:        12321,
		Separator:   "_",
		SessionTime: true,
	},
	ProviderStormProxies: {
		Name: ProviderStormProxies,
		Host: "rotating.stormproxies.com",
		Port: 9999,
	},
	ProviderNetNut: {
		Name:      ProviderNetNut,
		Host:      "gw-resi.netnut.io",
		Port:      5959,
		Separator: "-",
	},
}

// LookupProvider returns the known provider for name. Lookup is
// case-insensitive and ignores surrounding whitespace.
func LookupProvider(name string) (Provider, bool) {
	p, ok := providers[normalize(name)]
	return p, ok
}

// Providers lists the known provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
