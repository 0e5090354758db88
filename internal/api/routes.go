package api

import (
	"fmt"
	"maps"
	"net/http"

	"github.com/JaimeStill/moodai/internal/chat"
	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/consultations"
	"github.com/JaimeStill/moodai/internal/history"
	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/recommendations"
	"github.com/JaimeStill/moodai/internal/reports"
	"github.com/JaimeStill/moodai/internal/users"
	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/routes"
)

var schemaSources = []func() (map[string]*openapi.Schema, error){
	mood.Schemas,
	users.Schemas,
	history.Schemas,
	recommendations.Schemas,
	chat.Schemas,
	consultations.Schemas,
	reports.Schemas,
}

func groups(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		mood.NewHandler(domain.Classifier, runtime.Logger, runtime.MaxBody).Routes(),
		domain.Users.Handler().Routes(),
		domain.History.Handler().Routes(),
		domain.Recommendations.Handler().Routes(),
		domain.Chat.Handler().Routes(),
		domain.Consultations.Handler().Routes(),
		domain.Reports.Handler().Routes(),
	}
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	guard := runtime.Tokens.Guard(runtime.Logger)

	all := groups(domain, runtime)
	secured := make([]routes.Group, len(all))
	for i, g := range all {
		secured[i] = routes.Secure(guard, g)
	}
	routes.Register(mux, secured...)

	spec, err := buildSpec(cfg, all)
	if err != nil {
		return err
	}

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}

// Spec builds the OpenAPI document describing every route the API module serves.
func Spec(cfg *config.Config, domain *Domain, runtime *Runtime) (*openapi.Spec, error) {
	return buildSpec(cfg, groups(domain, runtime))
}

func buildSpec(cfg *config.Config, all []routes.Group) (*openapi.Spec, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	schemas := make(map[string]*openapi.Schema)
	for _, source := range schemaSources {
		s, err := source()
		if err != nil {
			return nil, fmt.Errorf("openapi schemas: %w", err)
		}
		maps.Copy(schemas, s)
	}
	spec.Components.AddSchemas(schemas)

	routes.Document(spec, "", all...)
	return spec, nil
}
