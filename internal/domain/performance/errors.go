package performance

import "errors"

var (
	ErrReviewNotFound          = errors.New("performance review not found")
	ErrReviewExists            = errors.New("performance review already exists for this employee and period")
	ErrReviewNotEditable       = errors.New("performance review is no longer editable")
	ErrInvalidStatusTransition = errors.New("invalid performance review status transition")
	ErrCannotReviewSelf        = errors.New("cannot review yourself")
	ErrNotReviewee             = errors.New("only the reviewed employee can acknowledge a review")
)

var ErrUnauthorizedAccess = errors.New("not allowed to access this performance review")
