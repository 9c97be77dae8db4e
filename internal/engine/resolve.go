package engine

import "ai-compliance/internal/catalog"

// Resolve вычисляет применимое подмножество каталога для уровня риска.
// Идемпотентна и не зависит от порядка: объединение по тегам, результат
// отсортирован по коду (каталог уже хранится отсортированным).
//
// Сверку с уже заведёнными ControlImplementation делает вызывающий:
// ставшие неприменимыми записи помечаются, но не удаляются.
func Resolve(level Level, hasVendor bool, cat *catalog.Catalog) []catalog.Control {
	var out []catalog.Control
	for _, c := range cat.All() {
		if appliesTo(c, level, hasVendor) {
			out = append(out, c)
		}
	}
	return out
}

func appliesTo(c catalog.Control, level Level, hasVendor bool) bool {
	switch {
	case c.HasTag(catalog.TagAll):
		return true
	case level == LevelHighRiskCandidate && c.HasTag(catalog.TagHighRisk):
		return true
	case level == LevelLimitedRisk && c.HasTag(catalog.TagLimitedRisk):
		return true
	case hasVendor && c.HasTag(catalog.TagVendorBased):
		return true
	}
	return false
}
