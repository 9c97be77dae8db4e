package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-compliance/internal/models"
)

func TestSnapshot_Validate(t *testing.T) {
	s := classifiedSnapshot(models.RiskMinimal)
	require.NoError(t, s.Validate())

	bad := s
	bad.SystemID = uuid.Nil
	assert.Error(t, bad.Validate())

	bad = classifiedSnapshot(models.RiskMinimal)
	bad.Classification.Level = "weird"
	assertInvalidSnapshot(t, bad.Validate())

	bad = classifiedSnapshot(models.RiskMinimal)
	bad.Controls = []ControlState{{Code: "GOV-01", Status: "half-done"}}
	assertInvalidSnapshot(t, bad.Validate())

	bad = classifiedSnapshot(models.RiskMinimal)
	bad.Tasks = []TaskState{{ID: 1, Status: models.TaskTodo, Priority: "urgent"}}
	assertInvalidSnapshot(t, bad.Validate())

	bad = classifiedSnapshot(models.RiskMinimal)
	bad.Artifacts = map[models.ProviderCategory]models.ArtifactStatus{"mystery": models.ArtifactComplete}
	assertInvalidSnapshot(t, bad.Validate())
}

func assertInvalidSnapshot(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var invalid *InvalidSnapshotError
	assert.ErrorAs(t, err, &invalid)
}

func TestSnapshot_HashStable(t *testing.T) {
	s := classifiedSnapshot(models.RiskHigh)
	s.Controls = controlsWithStatus(3, models.ControlInProgress)

	assert.Equal(t, s.Hash(), s.Hash())
}

func TestSnapshot_HashChangesWithContent(t *testing.T) {
	s := classifiedSnapshot(models.RiskHigh)
	s.Controls = controlsWithStatus(3, models.ControlInProgress)
	before := s.Hash()

	s.Controls[0].Status = models.ControlImplemented
	assert.NotEqual(t, before, s.Hash())
}
