// Package validation provides input validation utilities
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 150
	minPasswordLength = 12
	maxPasswordLength = 128
)

// RequiredMessage is the error for a missing form value.
const RequiredMessage = "Обязательное поле."

var (
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.-]+$`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
	specialRegex  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("Пароль должен содержать не менее %d символов.", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("Пароль должен содержать не более %d символов.", maxPasswordLength)
	}

	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("Пароль должен содержать хотя бы одну заглавную букву.")
	}
	if !hasLower {
		return fmt.Errorf("Пароль должен содержать хотя бы одну строчную букву.")
	}
	if !digitRegex.MatchString(password) {
		return fmt.Errorf("Пароль должен содержать хотя бы одну цифру.")
	}
	if !specialRegex.MatchString(password) {
		return fmt.Errorf("Пароль должен содержать хотя бы один специальный символ (!@#$%%^&*).")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements. Letters from any
// script are allowed.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength {
		return fmt.Errorf("Имя пользователя должно содержать не менее %d символов.", minUsernameLength)
	}
	if n > maxUsernameLength {
		return fmt.Errorf("Имя пользователя должно содержать не более %d символов.", maxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("Имя пользователя может содержать только буквы, цифры и символы . _ -")
	}

	first, _ := utf8.DecodeRuneInString(username)
	last, _ := utf8.DecodeLastRuneInString(username)
	if strings.ContainsRune("_.-", first) || strings.ContainsRune("_.-", last) {
		return fmt.Errorf("Имя пользователя не может начинаться или заканчиваться символами . _ -")
	}

	return nil
}

// ValidateCommentText only requires a non-blank body; there is no length limit.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New(RequiredMessage)
	}
	return nil
}
