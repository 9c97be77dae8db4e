package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.Greater(t, cat.Len(), 0)

	seen := map[string]bool{}
	for _, c := range cat.All() {
		assert.NotEmpty(t, c.Code)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Category)
		assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
		seen[c.Code] = true

		require.NotEmpty(t, c.AppliesTo, "%s has no applies_to tags", c.Code)
		for _, tag := range c.AppliesTo {
			assert.Truef(t, tag.Valid(), "%s has unknown tag %q", c.Code, tag)
		}
	}
}

func TestLoad_SortedByCode(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	controls := cat.All()
	for i := 1; i < len(controls); i++ {
		assert.Less(t, controls[i-1].Code, controls[i].Code)
	}
}

func TestByCode(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	ctrl, ok := cat.ByCode("GOV-01")
	require.True(t, ok)
	assert.True(t, ctrl.HasTag(TagAll))

	_, ok = cat.ByCode("NOPE-99")
	assert.False(t, ok)
}

func TestCatalog_CoversEveryTag(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	// у каждого тега резолвера должен быть хотя бы один контроль
	for _, tag := range []Tag{TagAll, TagHighRisk, TagLimitedRisk, TagVendorBased} {
		found := false
		for _, c := range cat.All() {
			if c.HasTag(tag) {
				found = true
				break
			}
		}
		assert.Truef(t, found, "no catalog entry carries tag %q", tag)
	}
}
