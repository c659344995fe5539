package util

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return len(email) <= 100 && emailRe.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= 8
}
