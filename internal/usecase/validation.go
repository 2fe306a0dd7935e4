package usecase

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LeadSubmission is the raw public lead-capture payload. Consent fields are
// pointers on purpose: an absent boolean is a validation failure, not an
// implicit false.
type LeadSubmission struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Message         string `json:"message"`
	ProjectInterest string `json:"projectInterest"`
	Source          string `json:"source"`
	SMSConsent      *bool  `json:"smsConsent"`
	EmailConsent    *bool  `json:"emailConsent"`
}

// ValidateLeadSubmission checks and normalizes a submission in place.
// It returns nil on success, or the full set of field errors.
func ValidateLeadSubmission(input *LeadSubmission) ValidationErrors {
	var errs ValidationErrors

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Message = strings.TrimSpace(input.Message)
	input.ProjectInterest = strings.TrimSpace(input.ProjectInterest)
	input.Source = strings.TrimSpace(input.Source)

	if input.Name == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) < 2 {
		errs = append(errs, ValidationError{"name", "must have at least 2 characters"})
	} else if len(input.Name) > 100 {
		errs = append(errs, ValidationError{"name", "must not exceed 100 characters"})
	}

	if input.Email != "" {
		if len(input.Email) > 200 {
			errs = append(errs, ValidationError{"email", "must not exceed 200 characters"})
		} else if !emailPattern.MatchString(input.Email) {
			errs = append(errs, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != "" {
		if len(input.Phone) > 30 {
			errs = append(errs, ValidationError{"phone", "must not exceed 30 characters"})
		} else if !isE164(input.Phone) {
			errs = append(errs, ValidationError{"phone", "must be in E.164 format (+ followed by digits)"})
		}
	}

	// At least one contact channel. The error lands on the email field so
	// the form has a single place to show it.
	if input.Email == "" && input.Phone == "" {
		errs = append(errs, ValidationError{"email", "either email or phone is required"})
	}

	if len(input.Message) > 1000 {
		errs = append(errs, ValidationError{"message", "must not exceed 1000 characters"})
	}

	if input.SMSConsent == nil {
		errs = append(errs, ValidationError{"smsConsent", "is required"})
	}
	if input.EmailConsent == nil {
		errs = append(errs, ValidationError{"emailConsent", "is required"})
	}

	if len(input.ProjectInterest) > 100 {
		errs = append(errs, ValidationError{"projectInterest", "must not exceed 100 characters"})
	}
	if len(input.Source) > 50 {
		errs = append(errs, ValidationError{"source", "must not exceed 50 characters"})
	}

	return errs
}

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

func isE164(phone string) bool {
	return e164Pattern.MatchString(phone)
}
