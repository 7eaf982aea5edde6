package handler

import (
	"net/http"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/transport/httpserver/middleware"
	"github.com/bytedance/sonic"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := sonic.ConfigStd.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func invalidJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
}

func invalidRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "invalid_request", message)
}

// fail maps a domain error to its status. Internal errors are logged with
// their cause and masked in the response.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	status, code := middleware.StatusFor(err)
	if status == http.StatusInternalServerError {
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, status, code, "internal error")
		return
	}
	h.log.BusinessError(op+": rejected", err, args...)
	writeError(w, status, code, errs.Message(err))
}

// reply writes payload with status, or the mapped error when err is set.
func (h *Handlers) reply(w http.ResponseWriter, op string, status int, payload any, err error, args ...any) {
	if err != nil {
		h.fail(w, op, err, args...)
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, payload)
}

func currentUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}

// membership returns what the household access middleware resolved for this route.
func membership(w http.ResponseWriter, r *http.Request) (household.Membership, bool) {
	m, ok := middleware.MembershipFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", household.ErrNotMember.Error())
		return household.Membership{}, false
	}
	return m, true
}
