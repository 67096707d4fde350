// Package content holds the read-only reference tables shown alongside the
// intake flow. Tables are immutable configuration loaded once at startup.
package content

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Settlement is one row of the settlement tracker.
type Settlement struct {
	Company     string  `json:"company" yaml:"company"`
	AmountUSD   float64 `json:"amount_usd" yaml:"amount_usd"`
	Year        int     `json:"year" yaml:"year"`
	Description string  `json:"description" yaml:"description"`
}

// Testimonial is one claimant account.
type Testimonial struct {
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
	Quote    string `json:"quote" yaml:"quote"`
}

// Library bundles the reference tables.
type Library struct {
	Settlements  []Settlement  `json:"settlements" yaml:"settlements"`
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials"`
}

// Default returns the built-in reference tables.
func Default() *Library {
	return &Library{
		Settlements: []Settlement{
			{Company: "DuPont", AmountUSD: 670_000_000, Year: 2017, Description: "Settlement for contamination in the Mid-Ohio Valley"},
			{Company: "3M", AmountUSD: 850_000_000, Year: 2018, Description: "Settlement with the state of Minnesota for groundwater contamination"},
			{Company: "Chemours", AmountUSD: 4_000_000, Year: 2019, Description: "Settlement for cleanup of Cape Fear River in North Carolina"},
			{Company: "Saint-Gobain", AmountUSD: 13_000_000, Year: 2020, Description: "Settlement for contamination in Hoosick Falls, NY"},
			{Company: "3M", AmountUSD: 98_000_000, Year: 2021, Description: "Settlement for water contamination in Alabama"},
			{Company: "Multiple Manufacturers", AmountUSD: 1_180_000_000, Year: 2022, Description: "Multi-district litigation settlement for firefighting foam"},
			{Company: "3M", AmountUSD: 10_300_000_000, Year: 2023, Description: "Nationwide settlement for PFAS water contamination"},
		},
		Testimonials: []Testimonial{
			{Name: "Michael Johnson", Location: "Camp Lejeune, NC", Quote: "After serving at Camp Lejeune for 8 years, I was diagnosed with kidney cancer. The settlement helped cover my medical expenses and provided for my family during treatment."},
			{Name: "Sarah Williams", Location: "Hoosick Falls, NY", Quote: "Our entire community's water was contaminated. After years of health issues, we finally got justice. The settlement helped us relocate to a safer area."},
			{Name: "Robert Davis", Location: "Parkersburg, WV", Quote: "I worked at the chemical plant for 15 years before being diagnosed. The legal team fought for me when I couldn't fight for myself."},
			{Name: "Jennifer Martinez", Location: "Parchment, MI", Quote: "My children developed serious health issues from our contaminated water supply. This settlement means they'll get the specialized care they need."},
			{Name: "David Wilson", Location: "Decatur, AL", Quote: "As a factory supervisor, I was exposed daily. When I developed thyroid disease, I didn't make the connection until others came forward too."},
			{Name: "Lisa Thompson", Location: "Portsmouth, NH", Quote: "My husband served at the naval shipyard. After his passing from cancer, this settlement has provided financial security for our children's future."},
		},
	}
}

// Load reads a Library from a YAML file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "content: read %s", path)
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, eris.Wrapf(err, "content: parse %s", path)
	}
	return &lib, nil
}

// TotalSettlementAmount sums the settlement tracker in USD.
func (l *Library) TotalSettlementAmount() float64 {
	var total float64
	for _, s := range l.Settlements {
		total += s.AmountUSD
	}
	return total
}
