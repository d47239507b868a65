package shared

import (
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/errs"
)

// MarkNotFound maps a repository NOT_FOUND to notFound and every other
// repository failure to ErrDatabaseOperationFailed. Errors that already
// carry a domain mark pass through.
func MarkNotFound(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return MarkStore(err)
}

// MarkStore tags unexpected store failures so handlers render a 500
// without leaking details.
func MarkStore(err error) error {
	if err == nil {
		return nil
	}
	var repoErr infra.RepositoryError
	if errs.As(err, &repoErr) {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return err
}
