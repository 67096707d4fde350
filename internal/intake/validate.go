// Package intake implements the multi-step claim wizard: per-section
// validation, ordered step transitions, and the disqualification and
// submission terminal states.
package intake

import (
	"regexp"
	"strings"
	"time"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

// emailPattern is a pragmatic format check, not an RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPhoneDigits = 10

// ValidatePersonal checks the personal section. All fields are required;
// email is format-checked and phone must carry at least ten digits.
func ValidatePersonal(p model.PersonalInfo) []model.FieldError {
	var errs []model.FieldError
	if strings.TrimSpace(p.FirstName) == "" {
		errs = append(errs, model.FieldError{Field: "personalInfo.firstName", Message: "First name is required"})
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs = append(errs, model.FieldError{Field: "personalInfo.lastName", Message: "Last name is required"})
	}
	if !emailPattern.MatchString(strings.TrimSpace(p.Email)) {
		errs = append(errs, model.FieldError{Field: "personalInfo.email", Message: "Invalid email address"})
	}
	if digitCount(p.PhoneNumber) < minPhoneDigits {
		errs = append(errs, model.FieldError{Field: "personalInfo.phoneNumber", Message: "Phone number must be at least 10 digits"})
	}
	return errs
}

// ValidateInjury checks the injury section. Exactly one specific condition is
// required, matching the selected injury type; the diagnosis year, when
// present, must fall in [1900, current year].
func ValidateInjury(in model.InjuryInfo) []model.FieldError {
	var errs []model.FieldError

	switch in.InjuryType {
	case model.InjuryCancer:
		if in.CancerType == "" {
			errs = append(errs, model.FieldError{Field: "injuryInfo.cancerType", Message: "Please select a specific condition"})
		} else if !contains(model.CancerTypes, in.CancerType) {
			errs = append(errs, model.FieldError{Field: "injuryInfo.cancerType", Message: "Unknown cancer type"})
		}
	case model.InjuryNonCancer:
		if in.NonCancerType == "" {
			errs = append(errs, model.FieldError{Field: "injuryInfo.nonCancerType", Message: "Please select a specific condition"})
		} else if !contains(model.NonCancerTypes, in.NonCancerType) {
			errs = append(errs, model.FieldError{Field: "injuryInfo.nonCancerType", Message: "Unknown condition"})
		}
	default:
		errs = append(errs, model.FieldError{Field: "injuryInfo.injuryType", Message: "Please select an injury type"})
	}

	if in.DiagnosisYear != 0 {
		currentYear := time.Now().Year()
		if in.DiagnosisYear < 1900 || in.DiagnosisYear > currentYear {
			errs = append(errs, model.FieldError{Field: "injuryInfo.diagnosisYear", Message: "Year must be between 1900 and the current year"})
		}
	}
	return errs
}

// ValidateExposure checks the exposure section. A visitor who is not
// currently in a contamination zone must supply at least one other exposure
// vector.
func ValidateExposure(e model.ExposureInfo) []model.FieldError {
	if e.IsCurrentlyInContaminationZone {
		return nil
	}
	hasPast := false
	for _, loc := range e.PastLocations {
		if strings.TrimSpace(loc) != "" {
			hasPast = true
			break
		}
	}
	if hasPast || strings.TrimSpace(e.WorkplaceDetails) != "" || strings.TrimSpace(e.MilitaryServiceHistory) != "" {
		return nil
	}
	return []model.FieldError{{Field: "exposureInfo.pastLocations", Message: "Please provide information about your exposure"}}
}

// ValidateLegal checks the legal section. The retainer flag has no format
// constraint; it drives the disqualification transition instead.
func ValidateLegal(_ model.LegalInfo) []model.FieldError {
	return nil
}

// ValidateClaim runs every section validator over a complete record.
func ValidateClaim(data model.ClaimFormData) []model.FieldError {
	var errs []model.FieldError
	errs = append(errs, ValidatePersonal(data.PersonalInfo)...)
	errs = append(errs, ValidateInjury(data.InjuryInfo)...)
	errs = append(errs, ValidateExposure(data.ExposureInfo)...)
	errs = append(errs, ValidateLegal(data.LegalInfo)...)
	return errs
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
