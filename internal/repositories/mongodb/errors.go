package mongodb

import (
	"errors"
	"fmt"

	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	codeUnauthorized  = 13
	codeWriteConflict = 112

	labelTransientTransaction = "TransientTransactionError"
	labelUnknownCommitResult  = "UnknownTransactionCommitResult"
)

// classify maps driver errors onto the repository sentinels. The driver error stays
// in the chain for logging.
func classify(err error) error {
	if err == nil || isClassified(err) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", repositories.ErrDuplicate, err)
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorLabel(labelTransientTransaction),
			serverErr.HasErrorLabel(labelUnknownCommitResult),
			serverErr.HasErrorCode(codeWriteConflict):
			return fmt.Errorf("%w: %w", repositories.ErrTransient, err)
		case serverErr.HasErrorCode(codeUnauthorized):
			return fmt.Errorf("%w: %w", repositories.ErrPermissionDenied, err)
		}
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %w", repositories.ErrTransient, err)
	}
	return err
}

func isClassified(err error) bool {
	for _, sentinel := range []error{
		repositories.ErrNotFound,
		repositories.ErrDuplicate,
		repositories.ErrNoStock,
		repositories.ErrAlreadyClaimed,
		repositories.ErrTransient,
		repositories.ErrPermissionDenied,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
