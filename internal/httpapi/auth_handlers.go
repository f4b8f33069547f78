package httpapi

import (
	"net/http"
	"time"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/audit"
	"github.com/offineeds/oms/internal/identity"
	"github.com/offineeds/oms/internal/ids"
	"github.com/offineeds/oms/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RedirectTo string `json:"redirect_to"`
}

type authResponse struct {
	Success     bool                `json:"success"`
	Error       string              `json:"error,omitempty"`
	User        *identity.Identity  `json:"user,omitempty"`
	AccessToken string              `json:"access_token,omitempty"`
	UserAccess  *session.UserAccess `json:"user_access,omitempty"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := a.sessions.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		writeJSON(w, http.StatusUnauthorized, authResponse{Error: res.Error})
		return
	}

	// Answer from this attempt's session; the shared manager state is
	// last-writer-wins and may already belong to a later login.
	summary := a.resolveSummary(r, res.User.ID)
	a.sessions.SetUserAccess(summary)

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})
	writeJSON(w, http.StatusOK, authResponse{
		Success:     true,
		User:        res.User,
		AccessToken: res.AccessToken,
		UserAccess:  summary,
	})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := a.sessions.Register(r.Context(), req.Email, req.Password, req.RedirectTo)
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, authResponse{Error: res.Error})
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.register", map[string]any{
		"email": req.Email,
	})
	writeJSON(w, http.StatusCreated, authResponse{Success: true})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.sessions.Logout(r.Context())
	_ = audit.LogEvent(r.Context(), "auth.logout", nil)
	writeJSON(w, http.StatusOK, authResponse{Success: true})
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	principal, ok := identity.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	summary := a.resolveSummary(r, principal.ID)
	writeJSON(w, http.StatusOK, authResponse{
		Success:    true,
		User:       &principal,
		UserAccess: summary,
	})
}

// resolveSummary flattens the user's resolved access into the session-level
// summary. Users without active grants get a nil summary, not an error.
func (a *API) resolveSummary(r *http.Request, userID string) *session.UserAccess {
	user, err := a.resolver.UserWithAccess(r.Context(), userID)
	if err != nil {
		a.log.Debug().Err(err).Str("user_id", userID).Msg("access summary unavailable")
		return nil
	}
	return buildSummary(user)
}

func buildSummary(user *access.UserWithAccess) *session.UserAccess {
	if user == nil {
		return nil
	}
	level := access.LevelRead
	for _, g := range user.Modules {
		if g.Level.Satisfies(level) {
			level = g.Level
		}
	}
	now := time.Now().UTC()
	return &session.UserAccess{
		ID:            ids.New(),
		UserID:        user.ID,
		Role:          user.Role.Name,
		AccessLevel:   level,
		ResourceScope: access.RoleResources(user.Role.Name),
		Status:        user.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
