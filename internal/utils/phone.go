package utils

import "strings"

// CleanPhone strips spaces and punctuation from a phone number. A leading + is kept.
func CleanPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	plus := strings.HasPrefix(phone, "+")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if plus && digits != "" {
		return "+" + digits
	}
	return digits
}
