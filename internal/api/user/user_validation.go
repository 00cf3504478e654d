package user

import (
	"regexp"

	"github.com/FACorreiaa/go-user-directory/internal/types"
)

var (
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	// Latin letters and the Cyrillic block U+0400..U+04FF; no digits, spaces or punctuation.
	namePattern = regexp.MustCompile(`^[A-Za-z\x{0400}-\x{04FF}]+$`)
)

func validateLogin(login string) error {
	if !loginPattern.MatchString(login) {
		return &types.ValidationError{Field: "login", Reason: "only latin letters and digits are allowed"}
	}
	return nil
}

func validatePassword(password string) error {
	if !loginPattern.MatchString(password) {
		return &types.ValidationError{Field: "password", Reason: "only latin letters and digits are allowed"}
	}
	return nil
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return &types.ValidationError{Field: "name", Reason: "only latin or cyrillic letters are allowed"}
	}
	return nil
}

func validateGender(g types.Gender) error {
	if !g.Valid() {
		return &types.ValidationError{Field: "gender", Reason: "must be 0, 1 or 2"}
	}
	return nil
}

func validateCreate(p types.CreateUserParams) error {
	if err := validateLogin(p.Login); err != nil {
		return err
	}
	if err := validatePassword(p.Password); err != nil {
		return err
	}
	if err := validateName(p.Name); err != nil {
		return err
	}
	return validateGender(p.Gender)
}
