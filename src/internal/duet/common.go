package duet

import (
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	// DefaultConnectTimeout bounds dialing the printer.
	DefaultConnectTimeout = 2 * time.Second
	// DefaultReadTimeout bounds waiting for a response. Duet boards can be slow
	// to answer while they are busy with motion.
	DefaultReadTimeout = 60 * time.Second

	// ConfigFilePath is the printer's startup configuration file.
	ConfigFilePath = "/sys/config.g"
)

// Endpoint templates. Placeholders are substituted with escaped values by
// expandEndpoint.
const (
	rrf2ConnectTmpl  = "/rr_connect?password={{password}}&time={{time}}"
	rrf2StatusTmpl   = "/rr_status?type={{type}}"
	rrf2GCodeTmpl    = "/rr_gcode?gcode={{gcode}}"
	rrf2DownloadTmpl = "/rr_download?name={{name}}"

	rrf3StatusPath = "/machine/status"
	rrf3CodePath   = "/machine/code/"
	rrf3FileTmpl   = "/machine/file/{{path}}"

	rrf2ConnectTime = "00:00"

	rrf2StatusProbe  = "1"
	rrf2StatusDetail = "2"
)

// Generation identifies the HTTP API generation a printer speaks.
type Generation int

const (
	GenerationUnknown Generation = 0
	Generation2       Generation = 2
	Generation3       Generation = 3
)

func (g Generation) String() string {
	switch g {
	case Generation2:
		return "RRF2"
	case Generation3:
		return "RRF3"
	default:
		return "unknown"
	}
}

// Coordinates maps an axis letter to its current position.
type Coordinates map[string]float64

// HTTPClient interface for dependency injection in tests.
//
// *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns an *http.Client whose dial is bounded by connectTimeout
// and whose wait for the response is bounded by readTimeout.
//
// Zero values fall back to DefaultConnectTimeout and DefaultReadTimeout.
func NewHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: readTimeout,
		// Every call is a one-shot request; Duet boards have very few sockets.
		DisableKeepAlives: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   connectTimeout + readTimeout,
	}
}

// expandEndpoint substitutes {{tag}} placeholders of tmpl with escape(params[tag]).
func expandEndpoint(tmpl string, params map[string]string, escape func(string) string) string {
	if !strings.Contains(tmpl, "{{") {
		return tmpl
	}

	t := fasttemplate.New(tmpl, "{{", "}}")
	return t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, escape(params[tag]))
	})
}

// escapeFilePath path-escapes every segment of a printer file path and drops
// the leading slash, so "/sys/config.g" becomes "sys/config.g".
func escapeFilePath(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
