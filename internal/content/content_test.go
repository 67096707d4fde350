package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lib := Default()
	require.Len(t, lib.Settlements, 7)
	require.Len(t, lib.Testimonials, 6)

	assert.Equal(t, "DuPont", lib.Settlements[0].Company)
	assert.Equal(t, 2017, lib.Settlements[0].Year)
	assert.Equal(t, "3M", lib.Settlements[6].Company)
	assert.Equal(t, 10_300_000_000.0, lib.Settlements[6].AmountUSD)

	for _, s := range lib.Settlements {
		assert.Greater(t, s.AmountUSD, 0.0, "settlement %s %d", s.Company, s.Year)
	}
	for _, tm := range lib.Testimonials {
		assert.NotEmpty(t, tm.Name)
		assert.NotEmpty(t, tm.Quote)
	}
}

func TestTotalSettlementAmount(t *testing.T) {
	lib := &Library{Settlements: []Settlement{
		{Company: "A", AmountUSD: 100},
		{Company: "B", AmountUSD: 250},
	}}
	assert.Equal(t, 350.0, lib.TotalSettlementAmount())

	assert.Zero(t, (&Library{}).TotalSettlementAmount())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := `settlements:
  - company: Acme Chemical
    amount_usd: 1500000
    year: 2020
    description: test settlement
testimonials:
  - name: Pat Example
    location: Somewhere, OH
    quote: It helped.
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	lib, err := Load(path)
	require.NoError(t, err)
	require.Len(t, lib.Settlements, 1)
	require.Len(t, lib.Testimonials, 1)
	assert.Equal(t, "Acme Chemical", lib.Settlements[0].Company)
	assert.Equal(t, 1_500_000.0, lib.Settlements[0].AmountUSD)
	assert.Equal(t, "Pat Example", lib.Testimonials[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settlements: {oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
