// Package routes declares route tables that both register on a ServeMux and
// document themselves into an OpenAPI spec.
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/moodai/pkg/openapi"
)

// Route is one method and pattern. Auth marks routes that need a signed-in
// user; Secure must wrap them before Register accepts them.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
	Auth    bool

	secured bool
}

// Group is a prefix with its routes and nested groups. Children inherit the
// prefix, and inherit the tags when they declare none.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Guard wraps a handler with an access check.
type Guard func(next http.HandlerFunc) http.HandlerFunc

// walk visits every route with its full path and effective tags.
func walk(g Group, prefix string, tags []string, visit func(path string, tags []string, r Route)) {
	prefix += g.Prefix
	if len(g.Tags) > 0 {
		tags = g.Tags
	}
	for _, r := range g.Routes {
		visit(prefix+r.Pattern, tags, r)
	}
	for _, child := range g.Children {
		walk(child, prefix, tags, visit)
	}
}

// Register mounts every route on mux. An Auth route that did not pass through
// Secure panics, so a forgotten guard fails at startup.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		walk(g, "", nil, func(path string, _ []string, r Route) {
			if r.Auth && !r.secured {
				panic(fmt.Sprintf("routes: %s %s requires auth but was not secured", r.Method, path))
			}
			mux.HandleFunc(r.Method+" "+path, r.Handler)
		})
	}
}

// Secure returns a copy of group with every Auth route wrapped by guard.
// The input is not modified.
func Secure(guard Guard, group Group) Group {
	out := group
	out.Routes = make([]Route, 0, len(group.Routes))
	for _, r := range group.Routes {
		if r.Auth {
			r.Handler = guard(r.Handler)
			r.secured = true
		}
		out.Routes = append(out.Routes, r)
	}

	out.Children = make([]Group, 0, len(group.Children))
	for _, child := range group.Children {
		out.Children = append(out.Children, Secure(guard, child))
	}
	return out
}

// Document adds a path entry for every route that carries an operation.
// Wildcard segments ({key...}) are written in their OpenAPI form ({key}) and
// Auth routes without explicit security get openapi.DefaultSecurity.
func Document(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, g := range groups {
		walk(g, basePath, nil, func(path string, tags []string, r Route) {
			if r.OpenAPI == nil {
				return
			}

			op := *r.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}
			if r.Auth && op.Security == nil {
				op.Security = openapi.DefaultSecurity()
			}

			path = strings.ReplaceAll(path, "...}", "}")
			if path == "" {
				path = "/"
			}
			item := spec.Paths[path]
			if item == nil {
				item = &openapi.PathItem{}
				spec.Paths[path] = item
			}
			item.Set(r.Method, &op)
		})
	}
}
