package services

import (
	"errors"
	"fmt"

	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
)

// ErrorCode identifies a redemption outcome shown to verifiers
type ErrorCode string

const (
	CodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	CodeAlreadyClaimed   ErrorCode = "ALREADY_CLAIMED"
	CodePrizeNotFound    ErrorCode = "PRIZE_NOT_FOUND"
	CodeNoStock          ErrorCode = "NO_STOCK"
	CodeExpired          ErrorCode = "EXPIRED"
	CodeTransient        ErrorCode = "TRANSIENT_ERROR"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// RedemptionError is a failed verification or claim. Two errors match under
// errors.Is when their codes are equal.
type RedemptionError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *RedemptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RedemptionError) Unwrap() error {
	return e.Err
}

func (e *RedemptionError) Is(target error) bool {
	t, ok := target.(*RedemptionError)
	return ok && t.Code == e.Code
}

// Targets for errors.Is
var (
	ErrInvalidFormat    = &RedemptionError{Code: CodeInvalidFormat, Message: "invalid QR code"}
	ErrAlreadyClaimed   = &RedemptionError{Code: CodeAlreadyClaimed, Message: "code already redeemed"}
	ErrPrizeNotFound    = &RedemptionError{Code: CodePrizeNotFound, Message: "prize not found"}
	ErrNoStock          = &RedemptionError{Code: CodeNoStock, Message: "prize out of stock"}
	ErrExpired          = &RedemptionError{Code: CodeExpired, Message: "code expired"}
	ErrTransient        = &RedemptionError{Code: CodeTransient, Message: "temporary failure, retry"}
	ErrPermissionDenied = &RedemptionError{Code: CodePermissionDenied, Message: "permission denied"}
)

func newRedemptionError(code ErrorCode, message string, err error) *RedemptionError {
	return &RedemptionError{Code: code, Message: message, Err: err}
}

// CodeOf returns the redemption code carried by err, or "" when there is none
func CodeOf(err error) ErrorCode {
	var re *RedemptionError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// storeError maps a repository failure without a domain meaning onto the taxonomy
func storeError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPermissionDenied):
		return newRedemptionError(CodePermissionDenied, ErrPermissionDenied.Message, err)
	case errors.Is(err, repositories.ErrTransient):
		return newRedemptionError(CodeTransient, ErrTransient.Message, err)
	default:
		return newRedemptionError(CodeTransient, "store unavailable", err)
	}
}

// Errors outside the redemption flow
var (
	ErrParticipantNotFound = errors.New("participant not registered")
	ErrConsentRequired     = errors.New("terms and conditions must be accepted")
	ErrAlreadyPlayed       = errors.New("participant already holds an active or claimed prize")
	ErrInvalidPass         = errors.New("play pass is unknown, used or expired")
	ErrWinNotFound         = errors.New("win not found")
	ErrFraudDetected       = errors.New("registration rejected by fraud check")
	ErrFraudCheckHold      = errors.New("fraud check unavailable, registration on hold")
	ErrCatalogFull         = errors.New("prize catalog is full")
	ErrPrizeExists         = errors.New("prize id already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrVerifierNotFound    = errors.New("verifier not found")
	ErrAlertNotFound       = errors.New("fraud alert not found")
	ErrResetNotConfirmed   = errors.New("reset confirmation word does not match")
)
