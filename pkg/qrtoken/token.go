// Package qrtoken issues and parses the QR code values handed to prize winners.
//
// A token has the form SANSOL-<PRIZEID_UPPER>-<EPOCH_MILLIS>. Prize ids may contain
// hyphens and digits, so the parser anchors on the trailing numeric segment.
package qrtoken

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Prefix starts every token
const Prefix = "SANSOL-"

// ErrInvalidFormat is returned for any value that is not a well-formed token
var ErrInvalidFormat = errors.New("invalid QR token format")

// Token is a parsed QR value
type Token struct {
	// PrizeID is lowercased for catalog lookup.
	PrizeID        string
	IssuedAtMillis int64
}

// IssuedAt returns the issue instant
func (t Token) IssuedAt() time.Time {
	return time.UnixMilli(t.IssuedAtMillis)
}

// String re-encodes the token in its canonical form
func (t Token) String() string {
	return Issue(t.PrizeID, t.IssuedAtMillis)
}

// Issue encodes a prize id and issue time
func Issue(prizeID string, issuedAtMillis int64) string {
	return Prefix + strings.ToUpper(prizeID) + "-" + strconv.FormatInt(issuedAtMillis, 10)
}

// Parse decodes a scanned value. Surrounding whitespace is ignored.
func Parse(raw string) (Token, error) {
	value := strings.TrimSpace(raw)
	if !strings.HasPrefix(value, Prefix) {
		return Token{}, fmt.Errorf("%w: missing %q prefix", ErrInvalidFormat, Prefix)
	}

	parts := strings.Split(value[len(Prefix):], "-")
	if len(parts) < 2 {
		return Token{}, fmt.Errorf("%w: expected <prize>-<timestamp>", ErrInvalidFormat)
	}

	last := parts[len(parts)-1]
	millis, err := strconv.ParseInt(last, 10, 64)
	if err != nil || last == "" || last[0] == '+' {
		return Token{}, fmt.Errorf("%w: timestamp segment %q is not an integer", ErrInvalidFormat, last)
	}

	prizeID := strings.Join(parts[:len(parts)-1], "-")
	if prizeID == "" {
		return Token{}, fmt.Errorf("%w: empty prize id", ErrInvalidFormat)
	}

	return Token{PrizeID: strings.ToLower(prizeID), IssuedAtMillis: millis}, nil
}

// PNG renders value as a QR code image of the given pixel size
func PNG(value string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(value, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}
