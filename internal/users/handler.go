package users

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/routes"
)

// Handler provides HTTP endpoints for signup, sign-in, and the current account.
type Handler struct {
	sys     System
	tokens  *auth.Tokens
	logger  *slog.Logger
	maxBody int64
}

// NewHandler creates a Handler with the given system, token issuer, logger,
// and request body limit.
func NewHandler(sys System, tokens *auth.Tokens, logger *slog.Logger, maxBody int64) *Handler {
	return &Handler{
		sys:     sys,
		tokens:  tokens,
		logger:  logger.With("handler", "users"),
		maxBody: maxBody,
	}
}

// Routes returns the route group definition for account endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Tags:   []string{"Auth"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/signup", Handler: h.Signup, OpenAPI: ops.signup},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: ops.login},
			{Method: "GET", Pattern: "/me", Handler: h.Me, OpenAPI: ops.me, Auth: true},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout, OpenAPI: ops.logout},
		},
	}
}

// Signup creates an account. Returns 201 with the new user ID.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[SignupCommand](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Signup(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, SignupResult{
		Message: "user created successfully",
		UserID:  u.ID,
	})
}

// Login verifies credentials and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[LoginCommand](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if cmd.Email == "" || cmd.Password == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCredentials)
		return
	}

	u, err := h.sys.Authenticate(r.Context(), cmd.Email, cmd.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	h.tokens.SetCookie(w, token)

	handlers.RespondJSON(w, http.StatusOK, LoginResult{
		Message:  "login successful",
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
}

// Me returns the signed-in account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	u, err := h.sys.Find(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearCookie(w)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
