package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overrideYAML = `
tiers: [2, 10, 50]
prices:
  STANDARD:
    URBAN: [1000, 2000, 3000]
    INTERURBAN: [1500, 2500, 3500]
    Interurbain: [1500, 2500, 3500]
    INTERNATIONAL: [9000, 9500, 9999.99]
  VALUABLE:
    URBAN: [1100, 2100, 3100]
    INTERURBAN: [1600, 2600, 3600]
    INTERNATIONAL: [9100, 9600, 9800]
  BULKY:
    URBAN: [1200, 2200, 3200]
    INTERURBAN: [1700, 2700, 3700]
    INTERNATIONAL: [9200, 9700, 9900]
`

func TestLoadTariffTable(t *testing.T) {
	t.Run("should load a complete override", func(t *testing.T) {
		table, err := services.LoadTariffTable(strings.NewReader(overrideYAML))
		require.NoError(t, err)
		engine, err := services.NewPricingEngine(table)
		require.NoError(t, err)

		p, err := engine.Quote(parcel.CategoryStandard, parcel.ZoneInternational, 45, false)

		require.NoError(t, err)
		assert.Equal(t, "9999.99", p.Total().String())
		assert.InDelta(t, 50.0, engine.MaxWeightKg(), 1e-9)
	})

	t.Run("should reject a missing zone row", func(t *testing.T) {
		broken := strings.Replace(overrideYAML, "    URBAN: [1200, 2200, 3200]\n", "", 1)

		_, err := services.LoadTariffTable(strings.NewReader(broken))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "BULKY/URBAN")
	})

	t.Run("should reject decreasing tiers", func(t *testing.T) {
		broken := strings.Replace(overrideYAML, "tiers: [2, 10, 50]", "tiers: [2, 1, 50]", 1)

		_, err := services.LoadTariffTable(strings.NewReader(broken))

		assert.Error(t, err)
	})

	t.Run("should reject a price too large to price safely", func(t *testing.T) {
		broken := strings.Replace(overrideYAML, "[9200, 9700, 9900]", "[9200, 9700, 90000000000000000]", 1)

		_, err := services.LoadTariffTable(strings.NewReader(broken))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "BULKY/INTERNATIONAL")
	})

	t.Run("should reject a negative price", func(t *testing.T) {
		broken := strings.Replace(overrideYAML, "[1000, 2000, 3000]", "[-1000, 2000, 3000]", 1)

		_, err := services.LoadTariffTable(strings.NewReader(broken))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		_, err := services.LoadTariffTable(strings.NewReader("tiers: [5]\ncurrency: XOF\n"))

		assert.Error(t, err)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		_, err := services.LoadTariffTable(strings.NewReader("tiers: [5]\nprices:\n  FRAGILE:\n    URBAN: [1]\n"))

		assert.Error(t, err)
	})
}

func TestLoadTariffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrideYAML), 0o600))

	table, err := services.LoadTariffFile(path)

	require.NoError(t, err)
	assert.NoError(t, table.Validate())

	_, err = services.LoadTariffFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultTariffTable_Validate(t *testing.T) {
	assert.NoError(t, services.DefaultTariffTable().Validate())
	assert.Error(t, services.TariffTable{}.Validate())
}
