package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/receipts/internal/billing"
	"github.com/mmynk/receipts/internal/extract"
	"github.com/mmynk/receipts/internal/ledger"
	"github.com/mmynk/receipts/internal/storage"
)

// connectError maps domain errors onto Connect codes. Validation, stock and
// extraction problems are recoverable and keep their message; anything
// else is a storage failure.
func connectError(err error) error {
	var (
		validationErr *ledger.ValidationError
		stockErr      *billing.StockError
		parseErr      *extract.ParseError
	)
	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &stockErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.As(err, &parseErr), errors.Is(err, extract.ErrNothingExtracted):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
