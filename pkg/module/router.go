package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/moodai/pkg/handlers"
)

// Router routes each request to the module owning its first path segment.
// Requests outside every module go to a plain ServeMux, and requests that the
// mux cannot match receive a JSON 404.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules: map[string]*Module{},
		native:  http.NewServeMux(),
	}
}

// Mount attaches m under its prefix. Mounting two modules on one prefix panics.
func (r *Router) Mount(m *Module) {
	if _, exists := r.modules[m.prefix]; exists {
		panic(fmt.Sprintf("module already mounted at %s", m.prefix))
	}
	r.modules[m.prefix] = m
}

// HandleNative registers a handler outside of any module, e.g. health checks.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// HandleStatus registers a JSON status endpoint. It answers 200 with okStatus while
// every check passes and 503 with "not ready" otherwise.
func (r *Router) HandleStatus(pattern, okStatus string, checks ...func() bool) {
	r.native.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		for _, check := range checks {
			if !check() {
				handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": okStatus})
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		req.URL.Path = path
	}

	if m, ok := r.modules[firstSegment(path)]; ok {
		m.Serve(w, req)
		return
	}

	if _, pattern := r.native.Handler(req); pattern == "" {
		handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("no route for %s %s", req.Method, path),
		})
		return
	}
	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
