package duet

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const rrf2ProbeStatus = `{"status":"I","coords":{"axesHomed":[0,0,0],"xyz":[0,0,0],"extr":[0]}}`

const rrf3MachineStatus = `{
  "result": {
    "move": {
      "axes": [
        {"letter": "X", "drives": [1]},
        {"letter": "Y", "drives": [0]},
        {"letter": "Z", "drives": [2]}
      ],
      "drives": [
        {"position": 20.5},
        {"position": 10.25},
        {"position": 3}
      ],
      "extruders": [{"position": 0}, {"position": 0}]
    },
    "tools": [{"number": 0}, {"number": 1}, {"number": 2}],
    "state": {"status": "processing"}
  }
}`

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   string
}

// fakePrinter serves canned responses by URL path and records every request.
// A route ending in "/" also matches every path below it.
type fakePrinter struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newFakePrinter(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *fakePrinter) {
	t.Helper()

	if routes == nil {
		routes = map[string]http.HandlerFunc{}
	}
	p := &fakePrinter{routes: routes}
	server := httptest.NewServer(p)
	t.Cleanup(server.Close)
	return server, p
}

func (p *fakePrinter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	p.mu.Lock()
	p.requests = append(p.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   string(body),
	})
	h := p.route(r.URL.Path)
	p.mu.Unlock()

	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (p *fakePrinter) route(path string) http.HandlerFunc {
	if h, ok := p.routes[path]; ok {
		return h
	}
	for prefix, h := range p.routes {
		if strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix) {
			return h
		}
	}
	return nil
}

// setRoute replaces the handler of path on a running server.
func (p *fakePrinter) setRoute(path string, h http.HandlerFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[path] = h
}

func (p *fakePrinter) request(i int) recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[i]
}

func (p *fakePrinter) paths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	paths := make([]string, 0, len(p.requests))
	for _, r := range p.requests {
		paths = append(paths, r.Path)
	}
	return paths
}

func (p *fakePrinter) requestCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

func (p *fakePrinter) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = nil
}

// sentCommands returns the G-code commands received, in order, for either generation.
func (p *fakePrinter) sentCommands() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var commands []string
	for _, r := range p.requests {
		switch {
		case r.Path == "/rr_gcode":
			commands = append(commands, r.Query["gcode"][0])
		case r.Path == "/machine/code/" && r.Method == http.MethodPost:
			commands = append(commands, r.Body)
		}
	}
	return commands
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func textHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(body))
	}
}

func statusHandler(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// rrf2Routes returns the routes of a RRF2 board whose detailed status is status2.
func rrf2Routes(status2 string) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/rr_connect": jsonHandler(`{"err":0,"sessionTimeout":8000,"boardType":"duetwifi102"}`),
		"/rr_status": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("type") == "1" {
				jsonHandler(rrf2ProbeStatus)(w, r)
				return
			}
			jsonHandler(status2)(w, r)
		},
		"/rr_gcode": jsonHandler(`{"buff":255}`),
	}
}

// rrf3Routes returns the routes of a RRF3 board whose machine status is status.
func rrf3Routes(status string) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/machine/status": jsonHandler(status),
		"/machine/code/":  textHandler(""),
	}
}
