package rules

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	PASSWORD_MIN_LEN = 8
	PASSWORD_MAX_LEN = 256
	EMAIL_MAX_LEN    = 512
	TOKEN_MAX_LEN    = 1024
)

var passwordCharset = regexp.MustCompile(`^[a-zA-Z\d]+$`)

var (
	Email = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(0, EMAIL_MAX_LEN),
	}

	Name = []validation.Rule{
		validation.Required,
		validation.Length(2, 128),
		validation.By(noSurroundingSpaces),
	}

	// Password is applied to every newly chosen password.
	Password = []validation.Rule{
		validation.Required,
		validation.Length(PASSWORD_MIN_LEN, PASSWORD_MAX_LEN),
		validation.Match(passwordCharset).Error("must contain only latin letters and digits"),
		validation.By(strongPassword),
	}

	Token = []validation.Rule{
		validation.Required,
		validation.Length(0, TOKEN_MAX_LEN),
	}
)

func noSurroundingSpaces(value interface{}) error {
	s, _ := value.(string)
	if s != strings.TrimSpace(s) {
		return errors.New("must not start or end with spaces")
	}
	return nil
}

func strongPassword(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return errors.New("must contain a lower-case letter, an upper-case letter and a digit")
	}
	return nil
}

// Equals checks that the value matches another field, e.g. a password confirmation.
func Equals(other string, msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s != other {
			return errors.New(msg)
		}
		return nil
	})
}
