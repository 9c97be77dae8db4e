package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

func ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	database.DB.
		Order("created_at desc").
		Limit(200).
		Find(&logs)

	c.JSON(http.StatusOK, logs)
}
