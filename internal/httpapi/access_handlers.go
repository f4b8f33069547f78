package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/audit"
)

type createAccessRequest struct {
	Role      string  `json:"role,omitempty"`
	RoleID    int64   `json:"role_id,omitempty"`
	ModuleIDs []int64 `json:"module_ids,omitempty"`
	Level     string  `json:"access_level,omitempty"`
}

type updateAccessRequest struct {
	ModuleID int64  `json:"module_id"`
	Level    string `json:"access_level"`
}

func (a *API) handleRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelRead); !ok {
		return
	}
	roles, err := a.resolver.Roles(r.Context())
	if err != nil {
		handleAccessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roles": roles})
}

func (a *API) handleModules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelRead); !ok {
		return
	}
	modules, err := a.resolver.Modules(r.Context())
	if err != nil {
		handleAccessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"modules": modules})
}

func (a *API) handleAccessUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelRead); !ok {
		return
	}
	if email := strings.TrimSpace(r.URL.Query().Get("email")); email != "" {
		user, err := a.resolver.UserAccessByEmail(r.Context(), email)
		if err != nil {
			handleAccessError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
		return
	}
	users, err := a.resolver.AllUsersWithAccess(r.Context())
	if err != nil {
		handleAccessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (a *API) handleAccessUserResource(w http.ResponseWriter, r *http.Request) {
	userID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/access/users/"), "/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getAccessUser(w, r, userID)
	case http.MethodPost:
		a.createAccessUser(w, r, userID)
	case http.MethodPatch:
		a.updateAccessUser(w, r, userID)
	case http.MethodDelete:
		a.deleteAccessUser(w, r, userID)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) getAccessUser(w http.ResponseWriter, r *http.Request, userID string) {
	if _, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelRead); !ok {
		return
	}
	user, err := a.resolver.UserWithAccess(r.Context(), userID)
	if err != nil {
		handleAccessError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) createAccessUser(w http.ResponseWriter, r *http.Request, userID string) {
	principal, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelAdmin)
	if !ok {
		return
	}
	var req createAccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	roleID := req.RoleID
	moduleIDs := req.ModuleIDs
	level := access.Level(strings.TrimSpace(strings.ToLower(req.Level)))

	// A bare role name bootstraps the role's default grant set.
	if len(moduleIDs) == 0 && req.Role != "" {
		def := a.resolver.DefaultAccessForRole(req.Role)
		roleID = def.RoleID
		level = def.Level
		ids, err := a.moduleIDsByName(r, def.Modules)
		if err != nil {
			handleAccessError(w, r, err)
			return
		}
		moduleIDs = ids
	}

	if len(moduleIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "module_ids or role is required")
		return
	}
	if !level.Valid() {
		writeError(w, r, http.StatusBadRequest, "unsupported access_level")
		return
	}

	if err := a.resolver.CreateUserAccess(r.Context(), userID, roleID, moduleIDs, level, principal.Email); err != nil {
		handleAccessError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "access.grant.created", map[string]any{
		"target_user": userID,
		"role_id":     roleID,
		"modules":     len(moduleIDs),
		"level":       string(level),
	})
	w.WriteHeader(http.StatusCreated)
}

func (a *API) updateAccessUser(w http.ResponseWriter, r *http.Request, userID string) {
	principal, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelAdmin)
	if !ok {
		return
	}
	var req updateAccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ModuleID == 0 {
		writeError(w, r, http.StatusBadRequest, "module_id is required")
		return
	}
	level := access.Level(strings.TrimSpace(strings.ToLower(req.Level)))
	if !level.Valid() {
		writeError(w, r, http.StatusBadRequest, "unsupported access_level")
		return
	}
	if err := a.resolver.UpdateUserAccess(r.Context(), userID, req.ModuleID, level, principal.Email); err != nil {
		handleAccessError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "access.grant.updated", map[string]any{
		"target_user": userID,
		"module_id":   req.ModuleID,
		"level":       string(level),
	})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteAccessUser(w http.ResponseWriter, r *http.Request, userID string) {
	if _, ok := a.requireModule(w, r, access.ModuleAdmin, access.LevelAdmin); !ok {
		return
	}
	var moduleID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("module_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid module_id")
			return
		}
		moduleID = &id
	}
	if err := a.resolver.DeleteUserAccess(r.Context(), userID, moduleID); err != nil {
		handleAccessError(w, r, err)
		return
	}
	fields := map[string]any{"target_user": userID}
	if moduleID != nil {
		fields["module_id"] = *moduleID
	}
	_ = audit.LogEvent(r.Context(), "access.grant.deleted", fields)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) moduleIDsByName(r *http.Request, names []string) ([]int64, error) {
	modules, err := a.resolver.Modules(r.Context())
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(modules))
	for _, m := range modules {
		byName[m.Name] = m.ID
	}
	var out []int64
	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			return nil, access.ErrNotFound
		}
		out = append(out, id)
	}
	return out, nil
}

func handleAccessError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, access.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, access.ErrConflict):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, access.ErrUserNotFound), errors.Is(err, access.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, access.ErrNoActiveGrants):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "access operation failed")
	}
}
