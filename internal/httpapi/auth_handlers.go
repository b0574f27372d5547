package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"samikna.id/internal/account"
	"samikna.id/internal/audit"
	"samikna.id/internal/auth"
	"samikna.id/internal/obs"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *account.Account `json:"user"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeFailure(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	acct, err := a.profiles.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			obs.CountLogin("failure")
			writeFailure(w, r, http.StatusUnauthorized, "invalid username or password")
			return
		}
		obs.LogError("login failed", err, map[string]any{
			"request_id": RequestIDFromContext(r.Context()),
		})
		writeFailure(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(acct.ID, acct.Username, a.tokenTTL)
	if err != nil {
		obs.LogError("token generation failed", err, map[string]any{
			"request_id": RequestIDFromContext(r.Context()),
		})
		writeFailure(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	obs.CountLogin("success")
	expiresAt := time.Now().UTC().Add(a.tokenTTL)
	_ = audit.LogEvent(r.Context(), "auth.login.success", map[string]any{
		"username":   acct.Username,
		"kabupaten":  acct.Kabupaten,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      acct,
	})
}
