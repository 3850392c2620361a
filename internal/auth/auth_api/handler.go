package auth_api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crg-site/internal/auth"
	"crg-site/internal/logger"
	"crg-site/internal/models"
	"crg-site/internal/utils"
)

type AdminDBLayer interface {
	GetAdminByEmail(email string) (*models.Admin, error)
}

type Handler struct {
	Admins     AdminDBLayer
	Tokens     *auth.TokenService
	Revoked    *auth.RevocationList
	Logger     *logger.Logger
	CookieName string
	SessionTTL time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login validates an email/password pair and establishes a session. Unknown
// email and wrong password are indistinguishable to the caller.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required", "")
		return
	}

	admin, err := h.Admins.GetAdminByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.Logger.LogAuth("LOGIN_FAILED", fmt.Sprintf("failed login attempt for %s", req.Email))
			utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		h.Logger.Error("AUTH", fmt.Sprintf("Failed to look up admin: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if !auth.CheckPassword(admin.Password, req.Password) {
		h.Logger.LogAuth("LOGIN_FAILED", fmt.Sprintf("failed login attempt for %s", req.Email))
		utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	token, err := h.Tokens.Issue(admin)
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Failed to issue session token: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Login successful", map[string]interface{}{
		"token": token,
		"admin": adminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name},
	}))
}

// Logout revokes the current session token for its remaining lifetime and
// clears the session cookie. Requires a valid session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing session credential")
		return
	}

	if h.Revoked != nil && h.Revoked.Client != nil {
		ttl := time.Until(identity.ExpiresAt)
		if err := h.Revoked.Revoke(r.Context(), identity.JTI, ttl); err != nil {
			// Best-effort: the cookie is cleared either way
			h.Logger.Error("AUTH", fmt.Sprintf("Failed to revoke session %s: %v", identity.JTI, err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Logged out", nil))
}

// Me returns the identity bound to the current session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing session credential")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Session active", adminResponse{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
	}))
}
