package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"samikna.id/internal/account"
	"samikna.id/internal/audit"
	"samikna.id/internal/auth"
	"samikna.id/internal/obs"
	"samikna.id/internal/profile"
	"samikna.id/internal/settings"
)

type passwordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type settingsChangeRequest struct {
	Category string                     `json:"category"`
	Settings map[string]json.RawMessage `json:"settings"`
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeFailure(w, r, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	acct, err := a.profiles.Resolve(r.Context(), userID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			writeFailure(w, r, http.StatusNotFound, "account not found")
			return
		}
		a.internalError(w, r, "resolve account", err)
		return
	}

	// Tokens carry identity, not capability: each endpoint filters by the
	// authenticated account id.
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.AccountID() != acct.ID {
		writeFailure(w, r, http.StatusForbidden, "forbidden")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getProfile(w, r, acct.ID)
	case http.MethodPut:
		a.updateProfile(w, r, acct.ID)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (a *API) getProfile(w http.ResponseWriter, r *http.Request, accountID string) {
	updateType := profileType(r)
	if updateType != "profile" {
		writeFailure(w, r, http.StatusBadRequest, "type must be profile for reads")
		return
	}
	view, err := a.profiles.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			writeFailure(w, r, http.StatusNotFound, "account not found")
			return
		}
		a.internalError(w, r, "load profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    view,
	})
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request, accountID string) {
	updateType := profileType(r)
	upd, err := a.decodeUpdate(w, r, updateType)
	if err != nil {
		obs.CountProfileUpdate(updateType, "rejected")
		writeFailure(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.profiles.Apply(r.Context(), accountID, upd); err != nil {
		obs.CountProfileUpdate(updateType, "rejected")
		a.writeUpdateError(w, r, err)
		return
	}

	obs.CountProfileUpdate(updateType, "success")
	_ = audit.LogEvent(r.Context(), "profile.update."+auditSuffix(upd), map[string]any{
		"target_account": accountID,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// decodeUpdate maps the wire type parameter and body onto the update sum type.
func (a *API) decodeUpdate(w http.ResponseWriter, r *http.Request, updateType string) (profile.Update, error) {
	switch updateType {
	case "profile":
		var fields account.ProfileFields
		if err := decodeJSON(w, r, &fields); err != nil {
			return nil, err
		}
		return profile.ProfileFieldsUpdate{Fields: fields}, nil
	case "password":
		var req passwordChangeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return profile.PasswordUpdate{
			CurrentPassword: req.CurrentPassword,
			NewPassword:     req.NewPassword,
			ConfirmPassword: req.ConfirmPassword,
		}, nil
	case "settings":
		var req settingsChangeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return profile.SettingsUpdate{
			Category: settings.Category(req.Category),
			Values:   req.Settings,
		}, nil
	default:
		return nil, errors.New("type must be one of profile, password, settings")
	}
}

func (a *API) writeUpdateError(w http.ResponseWriter, r *http.Request, err error) {
	var batchErr *settings.BatchError
	switch {
	case account.IsValidation(err), errors.Is(err, settings.ErrUnknownCategory):
		writeFailure(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &batchErr):
		writeFailure(w, r, http.StatusBadRequest, batchMessage(batchErr))
	case errors.Is(err, account.ErrInvalidCredentials):
		writeFailure(w, r, http.StatusUnauthorized, "current password is incorrect")
	case errors.Is(err, account.ErrNotFound):
		writeFailure(w, r, http.StatusNotFound, "account not found")
	default:
		a.internalError(w, r, "apply profile update", err)
	}
}

func (a *API) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	obs.LogError(op, err, map[string]any{
		"request_id": RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
	})
	writeFailure(w, r, http.StatusInternalServerError, "internal error")
}

func profileType(r *http.Request) string {
	t := strings.TrimSpace(r.URL.Query().Get("type"))
	if t == "" {
		return "profile"
	}
	return t
}

func auditSuffix(upd profile.Update) string {
	switch upd.(type) {
	case profile.ProfileFieldsUpdate:
		return "fields"
	case profile.PasswordUpdate:
		return "password"
	case profile.SettingsUpdate:
		return "settings"
	default:
		return "unknown"
	}
}

func batchMessage(e *settings.BatchError) string {
	keys := make([]string, 0, len(e.Failed))
	for k := range e.Failed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Failed[k].Error())
	}
	return "some settings were rejected: " + strings.Join(parts, "; ")
}
