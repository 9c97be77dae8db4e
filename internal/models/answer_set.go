package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type AnswerValue string

const (
	AnswerYes    AnswerValue = "yes"
	AnswerNo     AnswerValue = "no"
	AnswerUnsure AnswerValue = "unsure"
)

func (v AnswerValue) Valid() bool {
	switch v {
	case AnswerYes, AnswerNo, AnswerUnsure:
		return true
	}
	return false
}

// Answer — трёхзначный ответ на один скрининговый вопрос.
type Answer struct {
	Value AnswerValue `json:"value"`
	Note  string      `json:"note,omitempty"` // свободный комментарий / обоснование
}

// AnswerMap хранится одной JSONB-колонкой. Закрытое множество значений:
// неизвестные теги отбрасываются ошибкой уже на Scan, а не глубже в движке.
type AnswerMap map[string]Answer

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*m = AnswerMap{}
		return nil
	default:
		return fmt.Errorf("answer map: unsupported column type %T", src)
	}

	decoded := AnswerMap{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("answer map: %w", err)
	}
	for key, a := range decoded {
		if !a.Value.Valid() {
			return fmt.Errorf("answer map: unknown value %q for question %q", a.Value, key)
		}
	}
	*m = decoded
	return nil
}

// AnswerSet — снимок ответов по одной системе. После вычисления классификации
// набор блокируется; переоценка создаёт новый набор, старый не трогаем.
type AnswerSet struct {
	gorm.Model
	SystemID uint `gorm:"index;not null"`

	Answers AnswerMap `gorm:"type:jsonb;not null"`
	Locked  bool      `gorm:"not null;default:false"`
}
