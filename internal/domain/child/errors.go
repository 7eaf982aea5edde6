package child

import "baby-tracker-go/internal/domain/errs"

var (
	ErrChildNotFound     = errs.New(errs.KindNotFound, "child not found")
	ErrNameRequired      = errs.New(errs.KindBadRequest, "name is required")
	ErrInvalidGender     = errs.New(errs.KindBadRequest, "gender must be MALE, FEMALE or OTHER")
	ErrBirthDateRequired = errs.New(errs.KindBadRequest, "birth date is required")
	ErrBirthInFuture     = errs.New(errs.KindBadRequest, "birth date cannot be in the future")
)
