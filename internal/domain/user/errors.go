package user

import "baby-tracker-go/internal/domain/errs"

var (
	ErrProfileNotFound = errs.New(errs.KindNotFound, "profile not found")
	ErrUserIDRequired  = errs.New(errs.KindUnauthorized, "user id is required")
)
