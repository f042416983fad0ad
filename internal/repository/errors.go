package repository

import (
	"errors"

	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// translateWriteError maps a duplicate-key failure to a Conflict so that
// check-then-insert races surface like any other uniqueness violation. Other
// driver failures stay opaque to the caller; the call sites log the original.
func translateWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return errs.ErrConflict
	}
	return errs.ErrInternalServer
}
