package handlers

import (
	"ai-compliance/internal/catalog"
	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

// reconcilePlan — что нужно сделать с ControlImplementation после
// (пере)классификации. Удалений здесь нет намеренно: ставшие
// неприменимыми записи только помечаются, история внедрения остаётся.
type reconcilePlan struct {
	create           []models.ControlImplementation
	markApplicable   []uint
	markInapplicable []uint
}

// planReconcile — чистая сверка заведённых записей с разрешённым набором.
func planReconcile(systemID uint, existing []models.ControlImplementation, resolved []catalog.Control) reconcilePlan {
	resolvedCodes := make(map[string]struct{}, len(resolved))
	for _, ctrl := range resolved {
		resolvedCodes[ctrl.Code] = struct{}{}
	}

	existingCodes := make(map[string]models.ControlImplementation, len(existing))
	for _, impl := range existing {
		existingCodes[impl.ControlCode] = impl
	}

	var plan reconcilePlan
	for _, ctrl := range resolved {
		impl, ok := existingCodes[ctrl.Code]
		switch {
		case !ok:
			plan.create = append(plan.create, models.ControlImplementation{
				SystemID:    systemID,
				ControlCode: ctrl.Code,
				Status:      models.ControlNotStarted,
				Applicable:  true,
			})
		case !impl.Applicable:
			// контроль снова применим — оживляем старую запись вместе с её историей
			plan.markApplicable = append(plan.markApplicable, impl.ID)
		}
	}
	for _, impl := range existing {
		if _, ok := resolvedCodes[impl.ControlCode]; !ok && impl.Applicable {
			plan.markInapplicable = append(plan.markInapplicable, impl.ID)
		}
	}
	return plan
}

func applyReconcile(plan reconcilePlan) error {
	db := database.DB
	for i := range plan.create {
		if err := db.Create(&plan.create[i]).Error; err != nil {
			return err
		}
	}
	if len(plan.markApplicable) > 0 {
		if err := db.Model(&models.ControlImplementation{}).
			Where("id IN ?", plan.markApplicable).
			Update("applicable", true).Error; err != nil {
			return err
		}
	}
	if len(plan.markInapplicable) > 0 {
		if err := db.Model(&models.ControlImplementation{}).
			Where("id IN ?", plan.markInapplicable).
			Update("applicable", false).Error; err != nil {
			return err
		}
	}
	return nil
}
