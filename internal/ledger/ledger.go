// Package ledger ведёт версионированный журнал классификаций.
// Журнал append-only, на систему всегда ровно одна текущая запись;
// инвариант держится оптимистической конкуренцией по номеру версии.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"ai-compliance/internal/engine"
	"ai-compliance/internal/metrics"
	"ai-compliance/internal/models"
)

// Store — граница хранилища. Append обязан в одной транзакции снять
// is_current с предыдущей записи и вставить новую; занятый номер версии —
// engine.ErrVersionConflict.
type Store interface {
	MaxVersion(ctx context.Context, systemID uint) (int, error)
	Append(ctx context.Context, c *models.Classification) error
	CurrentRows(ctx context.Context, systemID uint) ([]models.Classification, error)
	History(ctx context.Context, systemID uint) ([]models.Classification, error)
}

// попыток на один commit; конфликтуют только конкурентные оценки одной
// системы, так что больше и не нужно
const commitRetries = 5

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Commit записывает результат оценки новой версией. Переоценка всегда
// проходит здесь же: историю не мутируем, только добавляем.
func (l *Ledger) Commit(ctx context.Context, systemID uint, res engine.Result, classifierID, changeReason string) (*models.Classification, error) {
	level, needsReview := res.StoredLevel()

	var lastErr error
	for attempt := 1; attempt <= commitRetries; attempt++ {
		version, err := l.store.MaxVersion(ctx, systemID)
		if err != nil {
			return nil, fmt.Errorf("read max version: %w", err)
		}

		row := &models.Classification{
			SystemID:     systemID,
			Version:      version + 1,
			RiskLevel:    level,
			Confidence:   res.Confidence,
			Rationale:    res.Rationale,
			IsCurrent:    true,
			NeedsReview:  needsReview,
			ClassifierID: classifierID,
			ChangeReason: changeReason,
		}

		err = l.store.Append(ctx, row)
		if err == nil {
			metrics.ClassificationCommits.Inc()
			return row, nil
		}
		if !errors.Is(err, engine.ErrVersionConflict) {
			return nil, fmt.Errorf("append classification: %w", err)
		}

		metrics.VersionConflicts.Inc()
		lastErr = err
		log.Warn().
			Uint("system_id", systemID).
			Int("version", row.Version).
			Int("attempt", attempt).
			Msg("classification version conflict, retrying")
	}

	return nil, fmt.Errorf("commit classification for system %d: retries exhausted: %w", systemID, lastErr)
}

// Current возвращает текущую классификацию (nil — ещё не было ни одной).
// Две и более текущих записи — фатальная ошибка целостности, такому
// журналу доверять нельзя.
func (l *Ledger) Current(ctx context.Context, systemID uint) (*models.Classification, error) {
	rows, err := l.store.CurrentRows(ctx, systemID)
	if err != nil {
		return nil, fmt.Errorf("read current classification: %w", err)
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	}
	metrics.IntegrityFailures.Inc()
	return nil, &engine.HistoryIntegrityError{SystemID: systemID, CurrentRows: len(rows)}
}

// History — все версии по убыванию. Только чтение, журнал неизменяем.
func (l *Ledger) History(ctx context.Context, systemID uint) ([]models.Classification, error) {
	return l.store.History(ctx, systemID)
}
