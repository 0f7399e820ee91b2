package password

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

// Hash hashes the plain password using bcrypt.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Verify compares a plain password with a hashed password.
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePolicy checks the signup password policy and returns every violated
// rule rather than stopping at the first.
func ValidatePolicy(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, xerrors.ErrPasswordTooShort.Error())
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		violations = append(violations, xerrors.ErrPasswordUppercase.Error())
	}
	if !hasLower {
		violations = append(violations, xerrors.ErrPasswordLowercase.Error())
	}
	if !hasDigit {
		violations = append(violations, xerrors.ErrPasswordDigit.Error())
	}
	if !hasSpecial {
		violations = append(violations, xerrors.ErrPasswordSpecialChar.Error())
	}

	return violations
}
