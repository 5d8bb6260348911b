package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength    = 200
	MaxCommentLength  = 1000
	MaxFeedbackLength = 2000
	minPasswordLength = 8
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nicknamePattern = regexp.MustCompile(`^[가-힣a-zA-Z0-9]{2,12}$`)
)

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword 要求至少 8 位，仅含字母、数字与 @$!%*#?&，且字母和数字各至少一个。
func ValidPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*#?&", r):
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// ValidNickname accepts 2-12 Hangul syllables, ASCII letters or digits.
func ValidNickname(nickname string) bool {
	return nicknamePattern.MatchString(nickname)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
