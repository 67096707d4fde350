package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

func validPersonal() model.PersonalInfo {
	return model.PersonalInfo{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "(555) 123-4567",
	}
}

func fieldPaths(errs []model.FieldError) []string {
	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Field
	}
	return paths
}

func TestValidatePersonal(t *testing.T) {
	assert.Empty(t, ValidatePersonal(validPersonal()))

	tests := []struct {
		name      string
		mutate    func(*model.PersonalInfo)
		wantField string
	}{
		{"missing first name", func(p *model.PersonalInfo) { p.FirstName = "" }, "personalInfo.firstName"},
		{"whitespace first name", func(p *model.PersonalInfo) { p.FirstName = "   " }, "personalInfo.firstName"},
		{"missing last name", func(p *model.PersonalInfo) { p.LastName = "" }, "personalInfo.lastName"},
		{"empty email", func(p *model.PersonalInfo) { p.Email = "" }, "personalInfo.email"},
		{"email without at", func(p *model.PersonalInfo) { p.Email = "jane.example.com" }, "personalInfo.email"},
		{"email without domain dot", func(p *model.PersonalInfo) { p.Email = "jane@example" }, "personalInfo.email"},
		{"email with space", func(p *model.PersonalInfo) { p.Email = "jane doe@example.com" }, "personalInfo.email"},
		{"short phone", func(p *model.PersonalInfo) { p.PhoneNumber = "555-1234" }, "personalInfo.phoneNumber"},
		{"empty phone", func(p *model.PersonalInfo) { p.PhoneNumber = "" }, "personalInfo.phoneNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPersonal()
			tt.mutate(&p)
			errs := ValidatePersonal(p)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidatePersonal_PhoneCountsDigitsOnly(t *testing.T) {
	p := validPersonal()
	p.PhoneNumber = "+1 (555) 123-4567"
	assert.Empty(t, ValidatePersonal(p))

	// Nine digits padded with punctuation still fails.
	p.PhoneNumber = "(555) 123-456"
	errs := ValidatePersonal(p)
	require.Len(t, errs, 1)
	assert.Equal(t, "personalInfo.phoneNumber", errs[0].Field)
}

func TestValidateInjury_Cancer(t *testing.T) {
	in := model.InjuryInfo{InjuryType: model.InjuryCancer, CancerType: "Kidney Cancer"}
	assert.Empty(t, ValidateInjury(in))

	in.CancerType = ""
	errs := ValidateInjury(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "injuryInfo.cancerType", errs[0].Field)

	in.CancerType = "Lung Cancer"
	errs = ValidateInjury(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "injuryInfo.cancerType", errs[0].Field)
	assert.Equal(t, "Unknown cancer type", errs[0].Message)
}

func TestValidateInjury_NonCancer(t *testing.T) {
	in := model.InjuryInfo{InjuryType: model.InjuryNonCancer, NonCancerType: "Thyroid Disease"}
	assert.Empty(t, ValidateInjury(in))

	in.NonCancerType = ""
	errs := ValidateInjury(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "injuryInfo.nonCancerType", errs[0].Field)
}

func TestValidateInjury_UnknownType(t *testing.T) {
	errs := ValidateInjury(model.InjuryInfo{InjuryType: "Something Else"})
	require.Len(t, errs, 1)
	assert.Equal(t, "injuryInfo.injuryType", errs[0].Field)
}

func TestValidateInjury_DiagnosisYear(t *testing.T) {
	currentYear := time.Now().Year()
	base := model.InjuryInfo{InjuryType: model.InjuryCancer, CancerType: "Liver Cancer"}

	tests := []struct {
		name string
		year int
		ok   bool
	}{
		{"unset", 0, true},
		{"current year", currentYear, true},
		{"1900", 1900, true},
		{"1899", 1899, false},
		{"next year", currentYear + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.DiagnosisYear = tt.year
			errs := ValidateInjury(in)
			if tt.ok {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "injuryInfo.diagnosisYear", errs[0].Field)
			}
		})
	}
}

func TestValidateExposure(t *testing.T) {
	tests := []struct {
		name string
		e    model.ExposureInfo
		ok   bool
	}{
		{"in zone, nothing else", model.ExposureInfo{IsCurrentlyInContaminationZone: true}, true},
		{"past location", model.ExposureInfo{PastLocations: []string{"Camp Lejeune, NC"}}, true},
		{"workplace", model.ExposureInfo{WorkplaceDetails: "Chemical plant, 1990-2002"}, true},
		{"military service", model.ExposureInfo{MilitaryServiceHistory: "USMC 1984-1990"}, true},
		{"nothing", model.ExposureInfo{}, false},
		{"blank past locations only", model.ExposureInfo{PastLocations: []string{"", "  "}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateExposure(tt.e)
			if tt.ok {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "exposureInfo.pastLocations", errs[0].Field)
			}
		})
	}
}

func TestValidateLegal(t *testing.T) {
	// Both values are acceptable; the retainer flag drives disqualification,
	// not validation.
	assert.Empty(t, ValidateLegal(model.LegalInfo{HasLegalRetainer: false}))
	assert.Empty(t, ValidateLegal(model.LegalInfo{HasLegalRetainer: true}))
}

func TestValidateClaim_AggregatesSections(t *testing.T) {
	errs := ValidateClaim(model.ClaimFormData{
		InjuryInfo: model.InjuryInfo{InjuryType: model.InjuryCancer},
	})

	paths := fieldPaths(errs)
	assert.Contains(t, paths, "personalInfo.firstName")
	assert.Contains(t, paths, "personalInfo.email")
	assert.Contains(t, paths, "injuryInfo.cancerType")
	assert.Contains(t, paths, "exposureInfo.pastLocations")
}
