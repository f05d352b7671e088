package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	bdPhoneRegex   = regexp.MustCompile(`^01\d{9}$`) // 11 digits, starts with 01
	studentIDRegex = regexp.MustCompile(`^\d{7}$`)   // 7 digits
)

// IsValidEmail reports whether the string looks like an email address.
func IsValidEmail(email string) bool {
	return strings.TrimSpace(email) != "" && emailRegex.MatchString(email)
}

// IsValidBdPhone reports whether the string is an 11-digit BD phone number.
func IsValidBdPhone(phone string) bool {
	return strings.TrimSpace(phone) != "" && bdPhoneRegex.MatchString(phone)
}

// IsValidStudentID reports whether the string is a 7-digit student id.
func IsValidStudentID(studentID string) bool {
	return strings.TrimSpace(studentID) != "" && studentIDRegex.MatchString(studentID)
}

// ParseError flattens a binding error into a field -> message map.
func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
	} else if err != nil {
		errors["error"] = err.Error()
	}
	return errors
}
