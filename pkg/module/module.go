// Package module mounts prefixed HTTP handlers, each carrying its own middleware stack,
// behind a single top-level router.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/moodai/pkg/middleware"
)

// Module serves every request under a single-level prefix such as "/api".
// The prefix is removed before the request reaches the inner handler.
type Module struct {
	prefix     string
	inner      http.Handler
	middleware middleware.System
}

// New builds a Module. It panics when prefix is not of the form "/name".
func New(prefix string, inner http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		inner:      inner,
		middleware: middleware.New(),
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends mw to the module's middleware. Middleware applies in registration order.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the inner handler wrapped in the module middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.inner)
}

// Serve dispatches req to the inner handler with the module prefix trimmed from its path.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, withPath(req, m.trim(req.URL.Path)))
}

func (m *Module) trim(path string) string {
	rest := strings.TrimPrefix(path, m.prefix)
	if rest == "" {
		return "/"
	}
	return rest
}

func withPath(req *http.Request, path string) *http.Request {
	u := *req.URL
	u.Path = path
	u.RawPath = ""

	out := req.Clone(req.Context())
	out.URL = &url.URL{}
	*out.URL = u
	return out
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix is empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix %q must begin with /", prefix)
	case prefix == "/" || strings.Contains(prefix[1:], "/"):
		return fmt.Errorf("module prefix %q must be exactly one path segment", prefix)
	}
	return nil
}
