package engine

import (
	"errors"
	"fmt"
)

// ErrVersionConflict — параллельная запись успела занять номер версии.
// Леджер ретраит сам; наружу ошибка выходит только после исчерпания попыток.
var ErrVersionConflict = errors.New("classification version conflict")

// HistoryIntegrityError — в журнале больше одной текущей записи по системе.
// Фатальная ошибка целостности: чтению такого журнала доверять нельзя.
type HistoryIntegrityError struct {
	SystemID    uint
	CurrentRows int
}

func (e *HistoryIntegrityError) Error() string {
	return fmt.Sprintf("classification history for system %d has %d current rows, want exactly 1",
		e.SystemID, e.CurrentRows)
}

// InvalidSnapshotError — снимок не прошёл проверку на границе адаптера
// (неизвестный тег перечисления и т.п.). До чистых функций движка не доходит.
type InvalidSnapshotError struct {
	Reason string
}

func (e *InvalidSnapshotError) Error() string {
	return "invalid snapshot: " + e.Reason
}
