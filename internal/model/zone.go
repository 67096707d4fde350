package model

// ContaminationZone is a named circular region around a known PFAS
// contamination site. Zones are fixed at process start and never mutated.
type ContaminationZone struct {
	Name        string     `json:"name" yaml:"name"`
	Center      Coordinate `json:"center" yaml:"center"`
	RadiusKm    float64    `json:"radius_km" yaml:"radius_km"`
	Description string     `json:"description" yaml:"description"`
}

// Verdict is the outcome of checking a coordinate against the zone catalog,
// optionally enriched with a human-readable place name. It is recomputed per
// location check and never persisted.
type Verdict struct {
	IsContaminated bool   `json:"isContaminated"`
	ZoneName       string `json:"zoneName,omitempty"`
	Description    string `json:"description,omitempty"`
	LocationName   string `json:"locationName,omitempty"`
	Message        string `json:"message"`
	Error          string `json:"error,omitempty"`
}
