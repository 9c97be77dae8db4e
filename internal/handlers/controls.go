package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

type controlView struct {
	models.ControlImplementation
	Name     string `json:"name"`
	Category string `json:"category"`
}

func ListControls(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var impls []models.ControlImplementation
	database.DB.
		Where("system_id = ?", system.ID).
		Order("control_code asc").
		Find(&impls)

	// дотягиваем имя и категорию из статического каталога
	out := make([]controlView, 0, len(impls))
	for _, impl := range impls {
		view := controlView{ControlImplementation: impl}
		if entry, found := controlCatalog.ByCode(impl.ControlCode); found {
			view.Name = entry.Name
			view.Category = entry.Category
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, out)
}

type controlStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func UpdateControlStatus(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	code := c.Param("code")
	var impl models.ControlImplementation
	if err := database.DB.
		Where("system_id = ? AND control_code = ?", system.ID, code).
		First(&impl).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "control is not attached to this system"})
		return
	}

	var req controlStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.ControlStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown control status"})
		return
	}

	impl.Status = status
	if req.Notes != "" {
		impl.Notes = req.Notes
	}
	if err := database.DB.Save(&impl).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save control status"})
		return
	}

	database.CreateAuditLog(actor(c), "control", code, "status_change", string(status))
	c.JSON(http.StatusOK, impl)
}
