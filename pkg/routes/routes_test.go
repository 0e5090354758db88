package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// denyWithoutToken stands in for the token guard.
func denyWithoutToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func historyGroup() routes.Group {
	return routes.Group{
		Prefix: "/history",
		Tags:   []string{"History"},
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: ok, Auth: true, OpenAPI: &openapi.Operation{Summary: "List entries"}},
			{Method: http.MethodGet, Pattern: "/chart", Handler: ok, Auth: true, OpenAPI: &openapi.Operation{Summary: "Chart"}},
		},
		Children: []routes.Group{{
			Prefix: "/public",
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: "/{key...}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Public"}},
			},
		}},
	}
}

func TestSecureAndRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Secure(denyWithoutToken, historyGroup()))

	tests := []struct {
		name  string
		path  string
		token bool
		want  int
	}{
		{"guarded without token", "/history", false, http.StatusUnauthorized},
		{"guarded with token", "/history/chart", true, http.StatusOK},
		{"open nested route", "/history/public/a/b", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token {
				req.Header.Set("Authorization", "Bearer x")
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRegisterUnsecuredAuthRoutePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsecured auth route")
		}
	}()
	routes.Register(http.NewServeMux(), historyGroup())
}

func TestSecureLeavesOriginalUntouched(t *testing.T) {
	g := historyGroup()
	routes.Secure(denyWithoutToken, g)

	defer func() {
		if recover() == nil {
			t.Error("original group should still be unsecured")
		}
	}()
	routes.Register(http.NewServeMux(), g)
}

func TestDocument(t *testing.T) {
	spec := openapi.NewSpec("MoodAI API", "0.1.0")
	routes.Document(spec, "", historyGroup())

	list := spec.Paths["/history"].Get
	if list == nil {
		t.Fatal("GET /history not documented")
	}
	if diff := cmp.Diff([]string{"History"}, list.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(openapi.DefaultSecurity(), list.Security); diff != "" {
		t.Errorf("security mismatch (-want +got):\n%s", diff)
	}

	public, ok := spec.Paths["/history/public/{key}"]
	if !ok || public.Get == nil {
		t.Fatalf("wildcard path not documented: %v", spec.Paths)
	}
	if public.Get.Security != nil {
		t.Error("public route should carry no security")
	}
	if diff := cmp.Diff([]string{"History"}, public.Get.Tags); diff != "" {
		t.Errorf("child should inherit tags (-want +got):\n%s", diff)
	}
}
