package model

// InjuryType distinguishes the two claim tracks on the injury step.
type InjuryType string

const (
	InjuryCancer    InjuryType = "Cancer"
	InjuryNonCancer InjuryType = "Non-Cancer"
)

// CancerTypes lists the cancer diagnoses accepted on the injury step.
var CancerTypes = []string{
	"Kidney Cancer",
	"Testicular Cancer",
	"Prostate Cancer",
	"Liver Cancer",
	"Pancreatic Cancer",
	"Breast Cancer",
	"Thyroid Cancer",
	"Non-Hodgkin's Lymphoma",
}

// NonCancerTypes lists the accepted non-cancer conditions.
var NonCancerTypes = []string{
	"Thyroid Disease",
	"Autoimmune Disorders",
	"Liver Disease",
	"High Cholesterol",
}

// PersonalInfo is the first wizard section. All fields are required.
type PersonalInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// InjuryInfo is the second wizard section. Exactly one of CancerType or
// NonCancerType is required, matching InjuryType.
type InjuryInfo struct {
	InjuryType    InjuryType `json:"injuryType"`
	CancerType    string     `json:"cancerType,omitempty"`
	NonCancerType string     `json:"nonCancerType,omitempty"`
	DiagnosisYear int        `json:"diagnosisYear,omitempty"`
}

// ExposureInfo is the third wizard section. A visitor outside every known
// zone must describe at least one other exposure vector.
type ExposureInfo struct {
	IsCurrentlyInContaminationZone bool     `json:"isCurrentlyInContaminationZone"`
	PastLocations                  []string `json:"pastLocations,omitempty"`
	WorkplaceDetails               string   `json:"workplaceDetails,omitempty"`
	MilitaryServiceHistory         string   `json:"militaryServiceHistory,omitempty"`
	ExposureDuration               string   `json:"exposureDuration,omitempty"`
}

// LegalInfo is the final wizard section. HasLegalRetainer drives the
// disqualification transition.
type LegalInfo struct {
	HasLegalRetainer bool `json:"hasLegalRetainer"`
}

// ClaimFormData is the complete intake record collected by the wizard.
type ClaimFormData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	InjuryInfo   InjuryInfo   `json:"injuryInfo"`
	ExposureInfo ExposureInfo `json:"exposureInfo"`
	LegalInfo    LegalInfo    `json:"legalInfo"`
}

// FieldError is a single validation failure, addressed by dotted field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
