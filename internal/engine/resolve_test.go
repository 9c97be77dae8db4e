package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-compliance/internal/catalog"
)

func codes(controls []catalog.Control) []string {
	out := make([]string, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.Code)
	}
	return out
}

func TestResolve_Idempotent(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	first := Resolve(LevelHighRiskCandidate, true, cat)
	second := Resolve(LevelHighRiskCandidate, true, cat)

	assert.Equal(t, first, second)
}

func TestResolve_VendorOnlyAdds(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	levels := []Level{LevelBlocked, LevelNeedsReview, LevelHighRiskCandidate, LevelLimitedRisk, LevelMinimalRisk, LevelNotClassified}
	for _, level := range levels {
		without := codes(Resolve(level, false, cat))
		with := codes(Resolve(level, true, cat))

		assert.Subsetf(t, with, without, "vendor flag must never remove controls at level %s", level)
		assert.GreaterOrEqual(t, len(with), len(without))
	}
}

func TestResolve_HighRisk(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	got := codes(Resolve(LevelHighRiskCandidate, false, cat))

	assert.Contains(t, got, "RSK-02") // оценка воздействия
	assert.Contains(t, got, "DEP-01")
	assert.Contains(t, got, "GOV-01") // базовые привязаны всегда
	assert.NotContains(t, got, "TRA-01")
	assert.NotContains(t, got, "VND-01")
}

func TestResolve_LimitedRisk(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	got := codes(Resolve(LevelLimitedRisk, false, cat))

	assert.Contains(t, got, "TRA-01")
	assert.Contains(t, got, "TRA-03")
	assert.NotContains(t, got, "RSK-01")
}

func TestResolve_MinimalRisk_BaselineOnly(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	for _, c := range Resolve(LevelMinimalRisk, false, cat) {
		assert.Truef(t, c.HasTag(catalog.TagAll), "minimal risk must only attach baseline controls, got %s", c.Code)
	}
}

func TestResolve_SortedByCode(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	got := codes(Resolve(LevelHighRiskCandidate, true, cat))
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
}
