package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ai-compliance/internal/engine"
	"ai-compliance/internal/models"
)

// ClassificationStore — реализация ledger.Store поверх gorm.
// Инвариант одной текущей записи держится уникальным индексом
// (system_id, version) плюс транзакционным снятием флага.
type ClassificationStore struct {
	db *gorm.DB
}

func NewClassificationStore(db *gorm.DB) *ClassificationStore {
	return &ClassificationStore{db: db}
}

func (s *ClassificationStore) MaxVersion(ctx context.Context, systemID uint) (int, error) {
	var version int
	err := s.db.WithContext(ctx).
		Model(&models.Classification{}).
		Where("system_id = ?", systemID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (s *ClassificationStore) Append(ctx context.Context, c *models.Classification) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Classification{}).
			Where("system_id = ? AND is_current = ?", c.SystemID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		return tx.Create(c).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// версию успел занять конкурентный писатель, транзакция откатилась —
		// предыдущая текущая запись осталась на месте
		return fmt.Errorf("system %d version %d: %w", c.SystemID, c.Version, engine.ErrVersionConflict)
	}
	return err
}

func (s *ClassificationStore) CurrentRows(ctx context.Context, systemID uint) ([]models.Classification, error) {
	var rows []models.Classification
	err := s.db.WithContext(ctx).
		Where("system_id = ? AND is_current = ?", systemID, true).
		Order("version asc").
		Find(&rows).Error
	return rows, err
}

func (s *ClassificationStore) History(ctx context.Context, systemID uint) ([]models.Classification, error) {
	var rows []models.Classification
	err := s.db.WithContext(ctx).
		Where("system_id = ?", systemID).
		Order("version desc").
		Find(&rows).Error
	return rows, err
}
