package fraudcheck

import (
	"context"
	"strings"
	"unicode"
)

// MockChecker is an offline stand-in for the API client. It flags obvious bot
// names, numbers made of one repeated digit, and missing consent paired with
// another signal.
type MockChecker struct{}

// NewMockChecker creates a new MockChecker
func NewMockChecker() *MockChecker {
	return &MockChecker{}
}

var botWords = []string{"test", "robot", "bot", "asdf", "qwerty", "fake"}

func (m *MockChecker) CheckSubmission(ctx context.Context, s Submission) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	name := strings.ToLower(s.FullName)
	var reasons []string
	for _, word := range botWords {
		if strings.Contains(name, word) {
			reasons = append(reasons, "el nombre parece generado o de prueba")
			break
		}
	}
	if repeatedDigits(s.PhoneNumber) {
		reasons = append(reasons, "el número de teléfono parece falso")
	}
	if !s.Consent && len(reasons) > 0 {
		reasons = append(reasons, "no hay consentimiento")
	}

	if len(reasons) == 0 {
		return Verdict{Explanation: "Envío válido."}, nil
	}
	return Verdict{IsFraudulent: true, Explanation: strings.Join(reasons, "; ")}, nil
}

func repeatedDigits(phone string) bool {
	var first rune
	count := 0
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			continue
		}
		if count == 0 {
			first = r
		} else if r != first {
			return false
		}
		count++
	}
	return count >= 7
}
