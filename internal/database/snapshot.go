package database

import (
	"context"
	"fmt"
	"time"

	"ai-compliance/internal/catalog"
	"ai-compliance/internal/engine"
	"ai-compliance/internal/ledger"
	"ai-compliance/internal/models"
)

// LoadSnapshot собирает срез состояния системы для чистых функций движка.
// Единственное место, где данные из хранилища превращаются в типизированный
// снимок; всё, что не прошло Validate, дальше адаптера не уходит.
func LoadSnapshot(ctx context.Context, system models.AISystem, led *ledger.Ledger, cat *catalog.Catalog) (engine.Snapshot, error) {
	snap := engine.Snapshot{
		SystemID:  system.PublicID,
		HasVendor: system.HasVendor(),
		Now:       time.Now().UTC(),
		Artifacts: map[models.ProviderCategory]models.ArtifactStatus{},
	}

	current, err := led.Current(ctx, system.ID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	if current != nil {
		snap.Classification = &engine.ClassificationState{
			Level:                current.RiskLevel,
			NeedsReview:          current.NeedsReview,
			ReassessmentRequired: current.ReassessmentRequired,
			Version:              current.Version,
		}
	}

	var impls []models.ControlImplementation
	if err := DB.WithContext(ctx).
		Where("system_id = ?", system.ID).
		Order("control_code asc").
		Find(&impls).Error; err != nil {
		return engine.Snapshot{}, fmt.Errorf("load control implementations: %w", err)
	}
	for _, impl := range impls {
		state := engine.ControlState{
			Code:       impl.ControlCode,
			Status:     impl.Status,
			Applicable: impl.Applicable,
		}
		// категория и теги берутся из каталога; код, выпавший из каталога,
		// остаётся в снимке без тегов — историю не выкидываем
		if entry, ok := cat.ByCode(impl.ControlCode); ok {
			state.Category = entry.Category
			state.Tags = entry.AppliesTo
		}
		snap.Controls = append(snap.Controls, state)
	}

	var evidence []models.EvidenceRecord
	if err := DB.WithContext(ctx).
		Where("system_id = ?", system.ID).
		Order("id asc").
		Find(&evidence).Error; err != nil {
		return engine.Snapshot{}, fmt.Errorf("load evidence: %w", err)
	}
	for _, e := range evidence {
		snap.Evidence = append(snap.Evidence, engine.EvidenceState{ID: e.ID, Status: e.Status})
	}

	var tasks []models.Task
	if err := DB.WithContext(ctx).
		Where("system_id = ?", system.ID).
		Order("id asc").
		Find(&tasks).Error; err != nil {
		return engine.Snapshot{}, fmt.Errorf("load tasks: %w", err)
	}
	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, engine.TaskState{
			ID:       t.ID,
			Status:   t.Status,
			Priority: t.Priority,
			DueDate:  t.DueDate,
		})
	}

	var artifacts []models.ProviderArtifact
	if err := DB.WithContext(ctx).
		Where("system_id = ?", system.ID).
		Find(&artifacts).Error; err != nil {
		return engine.Snapshot{}, fmt.Errorf("load provider artifacts: %w", err)
	}
	for _, a := range artifacts {
		snap.Artifacts[a.Category] = a.Status
	}

	if err := snap.Validate(); err != nil {
		return engine.Snapshot{}, err
	}
	return snap, nil
}
