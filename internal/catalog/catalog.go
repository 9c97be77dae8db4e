// Package catalog грузит статический каталог контролей из встроенного YAML.
// Каталог глобальный и одинаков для всех организаций; какие контроли
// применимы к конкретной системе, решает engine.Resolve.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

type Tag string

const (
	TagAll         Tag = "all"
	TagHighRisk    Tag = "high_risk"
	TagLimitedRisk Tag = "limited_risk"
	TagVendorBased Tag = "vendor_based"
)

func (t Tag) Valid() bool {
	switch t {
	case TagAll, TagHighRisk, TagLimitedRisk, TagVendorBased:
		return true
	}
	return false
}

type Control struct {
	Code      string `yaml:"code" json:"code"`
	Name      string `yaml:"name" json:"name"`
	Category  string `yaml:"category" json:"category"`
	AppliesTo []Tag  `yaml:"applies_to" json:"applies_to"`
}

func (c Control) HasTag(t Tag) bool {
	for _, tag := range c.AppliesTo {
		if tag == t {
			return true
		}
	}
	return false
}

type Catalog struct {
	controls []Control
	byCode   map[string]Control
}

type catalogFile struct {
	Controls []Control `yaml:"controls"`
}

// Load разбирает встроенный каталог и валидирует его целиком:
// битый каталог — ошибка старта, а не сюрприз в середине оценки.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(rawCatalog, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Controls) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byCode := make(map[string]Control, len(file.Controls))
	for _, c := range file.Controls {
		if c.Code == "" || c.Name == "" || c.Category == "" {
			return nil, fmt.Errorf("catalog entry %q: code, name and category are required", c.Code)
		}
		if _, dup := byCode[c.Code]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate code", c.Code)
		}
		if len(c.AppliesTo) == 0 {
			return nil, fmt.Errorf("catalog entry %q: applies_to is empty", c.Code)
		}
		for _, t := range c.AppliesTo {
			if !t.Valid() {
				return nil, fmt.Errorf("catalog entry %q: unknown tag %q", c.Code, t)
			}
		}
		byCode[c.Code] = c
	}

	controls := make([]Control, len(file.Controls))
	copy(controls, file.Controls)
	sort.Slice(controls, func(i, j int) bool { return controls[i].Code < controls[j].Code })

	return &Catalog{controls: controls, byCode: byCode}, nil
}

// All возвращает копию: каталог после загрузки неизменяем.
func (c *Catalog) All() []Control {
	out := make([]Control, len(c.controls))
	copy(out, c.controls)
	return out
}

func (c *Catalog) ByCode(code string) (Control, bool) {
	ctrl, ok := c.byCode[code]
	return ctrl, ok
}

func (c *Catalog) Len() int {
	return len(c.controls)
}
