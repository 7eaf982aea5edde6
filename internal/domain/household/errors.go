package household

import (
	"errors"

	"baby-tracker-go/internal/domain/errs"
)

var (
	ErrHouseholdNotFound    = errs.New(errs.KindNotFound, "household not found")
	ErrInviteCodeNotFound   = errs.New(errs.KindNotFound, "invite code not found")
	ErrMemberNotFound       = errs.New(errs.KindNotFound, "member not found")
	ErrAlreadyMember        = errs.New(errs.KindConflict, "already a member of this household")
	ErrOwnerMustTransfer    = errs.New(errs.KindConflict, "owner must transfer ownership before leaving")
	ErrNotMember            = errs.New(errs.KindForbidden, "no access to this household")
	ErrInsufficientRole     = errs.New(errs.KindForbidden, "insufficient role for this action")
	ErrCannotRemoveOwner    = errs.New(errs.KindForbidden, "cannot remove the household owner")
	ErrCannotChangeOwnRole  = errs.New(errs.KindBadRequest, "cannot change your own role")
	ErrConfirmationMismatch = errs.New(errs.KindBadRequest, "confirmation does not match household name")
	ErrInvalidRole          = errs.New(errs.KindBadRequest, "invalid role")
	ErrTargetRequired       = errs.New(errs.KindBadRequest, "householdId or childId is required")
	ErrCodeGenerationFailed = errors.New("invite code generation failed")
)
