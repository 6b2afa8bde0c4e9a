package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/middleware"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// now is the request clock
var now = time.Now

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

var redemptionStatus = map[services.ErrorCode]int{
	services.CodeInvalidFormat:    http.StatusBadRequest,
	services.CodeAlreadyClaimed:   http.StatusConflict,
	services.CodePrizeNotFound:    http.StatusNotFound,
	services.CodeNoStock:          http.StatusConflict,
	services.CodeExpired:          http.StatusGone,
	services.CodeTransient:        http.StatusServiceUnavailable,
	services.CodePermissionDenied: http.StatusForbidden,
}

var domainErrors = []struct {
	err    error
	code   string
	status int
}{
	{services.ErrParticipantNotFound, "PARTICIPANT_NOT_FOUND", http.StatusNotFound},
	{services.ErrConsentRequired, "CONSENT_REQUIRED", http.StatusBadRequest},
	{services.ErrAlreadyPlayed, "ALREADY_PLAYED", http.StatusConflict},
	{services.ErrInvalidPass, "INVALID_PASS", http.StatusForbidden},
	{services.ErrWinNotFound, "WIN_NOT_FOUND", http.StatusNotFound},
	{services.ErrFraudDetected, "FRAUD_DETECTED", http.StatusForbidden},
	{services.ErrFraudCheckHold, "FRAUD_CHECK_UNAVAILABLE", http.StatusServiceUnavailable},
	{services.ErrCatalogFull, "CATALOG_FULL", http.StatusConflict},
	{services.ErrPrizeExists, "PRIZE_EXISTS", http.StatusConflict},
	{services.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
	{services.ErrUsernameTaken, "USERNAME_TAKEN", http.StatusConflict},
	{services.ErrVerifierNotFound, "VERIFIER_NOT_FOUND", http.StatusNotFound},
	{services.ErrAlertNotFound, "ALERT_NOT_FOUND", http.StatusNotFound},
	{services.ErrResetNotConfirmed, "RESET_NOT_CONFIRMED", http.StatusBadRequest},
}

// respondError writes err as {"code","error"} with the matching HTTP status
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var re *services.RedemptionError
	if errors.As(err, &re) {
		status, ok := redemptionStatus[re.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, errorResponse{Code: string(re.Code), Error: re.Message})
		return
	}

	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			c.JSON(d.status, errorResponse{Code: d.code, Error: err.Error()})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Error: "internal server error"})
}

func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Error: err.Error()})
}

func sessionSubject(c *gin.Context) string {
	if s := middleware.CurrentSession(c); s != nil {
		return s.Subject
	}
	return ""
}
