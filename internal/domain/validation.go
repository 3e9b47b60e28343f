package domain

import (
	"regexp"
)

var (
	loginRe = regexp.MustCompile(`^[A-Za-z0-9]{4,}$`)
	// Пароль: мин 8, буквы в разных регистрах, >=1 цифра
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

func ValidLogin(s string) bool {
	return loginRe.MatchString(s)
}

func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	return upperRe.MatchString(s) && lowerRe.MatchString(s) && digitRe.MatchString(s)
}
