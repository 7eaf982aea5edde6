package handler

import (
	"context"
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/user"
)

type authMeResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	AvatarURL   string  `json:"avatarUrl"`
	DisplayName *string `json:"displayName,omitempty"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			h.log.InternalError("health: database ping failed", err)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Time: time.Now().UTC()})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Time: time.Now().UTC()})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	current, ok := currentUser(w, r)
	if !ok {
		return
	}

	response := authMeResponse{
		ID:        current.ID,
		Email:     current.Email,
		Name:      current.Name,
		AvatarURL: current.AvatarURL,
	}
	profile, err := h.Users.GetProfile(r.Context(), current.ID)
	switch {
	case err == nil:
		response.DisplayName = profile.DisplayName
	case errs.IsNotFound(err):
	default:
		h.fail(w, "users.me", err, "user_id", current.ID)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	current, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.UpdateProfile(r.Context(), current.ID, user.UpdateProfileInput{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	h.reply(w, "users.update_me", http.StatusOK, profile, err, "user_id", current.ID)
}
