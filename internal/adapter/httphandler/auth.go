package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
)

type AuthHandler struct {
	auth  port.AuthService
	stats port.StatsService
}

func RegisterAuth(
	mux *http.ServeMux,
	auth port.AuthService,
	stats port.StatsService,
	gate func(http.Handler) http.Handler,
) {
	h := AuthHandler{auth, stats}
	mux.HandleFunc("POST /api/admin/login", h.Login)
	mux.Handle("GET /api/admin/verify", gate(http.HandlerFunc(h.Verify)))
	mux.Handle("GET /api/admin/dashboard/stats", gate(http.HandlerFunc(h.DashboardStats)))
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Login"
	log := slog.With("op", op)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
			return
		}
		writeServiceError(w, op, err)
		return
	}

	log.Info("admin logged in", "email", user.Email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toAdminUser(user)})
}

func (h AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Verify"

	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied, no token provided")
		return
	}

	user, err := h.auth.UserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{User: toAdminUser(user)})
}

func (h AuthHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.DashboardStats"

	stats, err := h.stats.DashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}
