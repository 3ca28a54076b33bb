package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/scrapeproxy/internal/proxy"
	"github.com/jimezsa/scrapeproxy/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTSV   Format = "tsv"
	FormatEnv   Format = "env"
)

// View selects which descriptor of a Report is written.
type View string

const (
	ViewInfo       View = "info"
	ViewPlaywright View = "playwright"
	ViewRequests   View = "requests"
	ViewAll        View = "all"
)

type WriteOptions struct {
	ColorEnabled bool
	// Reveal prints passwords in table and TSV output. JSON and env output
	// always carry them.
	Reveal bool
}

// Report is a snapshot of a proxy config and its output descriptors.
type Report struct {
	Enabled    bool                   `json:"enabled"`
	Provider   string                 `json:"provider"`
	Endpoint   string                 `json:"endpoint,omitempty"`
	Country    string                 `json:"country,omitempty"`
	Sticky     bool                   `json:"sticky"`
	TTLMinutes int                    `json:"sticky_ttl_minutes"`
	Session    string                 `json:"session"`
	Username   string                 `json:"username,omitempty"`
	Info       string                 `json:"info"`
	Playwright *proxy.PlaywrightProxy `json:"playwright"`
	Requests   proxy.RequestsProxy    `json:"requests"`

	password string
}

func NewReport(cfg *proxy.Config) Report {
	s := cfg.Settings()
	r := Report{
		Enabled:    s.Enabled,
		Provider:   s.Provider,
		Country:    s.Country,
		Sticky:     s.Sticky,
		TTLMinutes: s.StickyTTLMinutes,
		Session:    cfg.SessionID(),
		Info:       cfg.Info(),
		Playwright: cfg.PlaywrightProxy(),
		Requests:   cfg.RequestsProxy(),
		password:   s.Password,
	}
	if s.Host != "" {
		r.Endpoint = s.Host + ":" + strconv.Itoa(s.Port)
	}
	if s.Enabled {
		r.Username = cfg.ProxyUsername()
	}
	return r
}

func ParseView(value string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(value))) {
	case ViewInfo, "":
		return ViewInfo, nil
	case ViewPlaywright:
		return ViewPlaywright, nil
	case ViewRequests:
		return ViewRequests, nil
	case ViewAll:
		return ViewAll, nil
	default:
		return "", fmt.Errorf("unknown view: %s", value)
	}
}

func WriteReport(w io.Writer, r Report, view View, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jsonValue(r, view))
	case FormatEnv:
		return writeEnv(w, r, view)
	case FormatTSV:
		return writeTSV(w, rows(r, view, opts.Reveal))
	default:
		return writeTable(w, rows(r, view, opts.Reveal), opts)
	}
}

func jsonValue(r Report, view View) any {
	switch view {
	case ViewPlaywright:
		return r.Playwright
	case ViewRequests:
		return r.Requests
	case ViewInfo:
		return map[string]string{"info": r.Info}
	default:
		return r
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// writeEnv prints shell assignments for the standard proxy variables.
func writeEnv(w io.Writer, r Report, view View) error {
	if view != ViewRequests && view != ViewAll {
		return fmt.Errorf("env format only supports the %s view", ViewRequests)
	}
	if r.Requests == nil {
		return nil
	}
	for _, scheme := range []string{"http", "https"} {
		if _, err := fmt.Fprintf(w, "%s_PROXY=%s\n", strings.ToUpper(scheme), shellQuote(r.Requests[scheme])); err != nil {
			return err
		}
	}
	return nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

type row struct {
	key   string
	value string
}

func rows(r Report, view View, reveal bool) []row {
	var out []row
	if view == ViewInfo || view == ViewAll {
		country := r.Country
		if country == "" {
			country = "any"
		}
		out = append(out,
			row{"provider", r.Provider},
			row{"enabled", strconv.FormatBool(r.Enabled)},
			row{"endpoint", r.Endpoint},
			row{"country", country},
			row{"sticky", strconv.FormatBool(r.Sticky)},
			row{"sticky_ttl_minutes", strconv.Itoa(r.TTLMinutes)},
			row{"session", r.Session},
			row{"username", r.Username},
		)
	}
	if (view == ViewPlaywright || view == ViewAll) && r.Playwright != nil {
		out = append(out,
			row{"playwright.server", r.Playwright.Server},
			row{"playwright.username", r.Playwright.Username},
			row{"playwright.password", ui.Mask(r.Playwright.Password, reveal)},
		)
	}
	if (view == ViewRequests || view == ViewAll) && r.Requests != nil {
		schemes := make([]string, 0, len(r.Requests))
		for scheme := range r.Requests {
			schemes = append(schemes, scheme)
		}
		sort.Strings(schemes)
		for _, scheme := range schemes {
			out = append(out, row{"requests." + scheme, maskURL(r.Requests[scheme], r.password, reveal)})
		}
	}
	return out
}

func maskURL(value, password string, reveal bool) string {
	if reveal || password == "" {
		return value
	}
	return strings.Replace(value, ":"+password+"@", ":"+ui.SecretMask+"@", 1)
}

func writeTSV(w io.Writer, data []row) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	for _, r := range data {
		if err := writer.Write([]string{r.key, r.value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, data []row, opts WriteOptions) error {
	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "no proxy")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	output := termenv.NewOutput(w)
	for _, r := range data {
		fmt.Fprintf(tw, "%s\t%s\n", ui.Highlight(output, opts.ColorEnabled, r.key), r.value)
	}
	return tw.Flush()
}
