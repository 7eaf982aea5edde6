package middleware

import (
	"net/http"
	"strings"

	"baby-tracker-go/internal/domain/errs"
	"github.com/bytedance/sonic"
)

var kindStatus = map[errs.Kind]int{
	errs.KindUnauthorized: http.StatusUnauthorized,
	errs.KindForbidden:    http.StatusForbidden,
	errs.KindNotFound:     http.StatusNotFound,
	errs.KindConflict:     http.StatusConflict,
	errs.KindBadRequest:   http.StatusBadRequest,
}

// StatusFor maps a domain error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	kind := errs.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		return http.StatusInternalServerError, "internal_error"
	}
	return status, strings.ToLower(string(kind))
}

func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	writeError(w, status, code, errs.Message(err))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigStd.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
