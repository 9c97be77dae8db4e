package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ai-compliance/internal/database"
	"ai-compliance/internal/engine"
	"ai-compliance/internal/models"
)

type createSystemRequest struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Purpose        string `json:"purpose"`
	Vendor         string `json:"vendor"`
	Department     string `json:"department"`
	Description    string `json:"description"`
}

func CreateSystem(c *gin.Context) {
	var req createSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
		return
	}

	var org models.Organization
	if err := database.DB.Where("public_id = ?", orgID).First(&org).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "system name must be at least 3 characters"})
		return
	}

	role := models.SystemRole(req.Role)
	switch role {
	case models.RoleDeployer, models.RoleProvider:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be deployer or provider"})
		return
	}

	system := models.AISystem{
		PublicID:       uuid.New(),
		OrganizationID: org.ID,
		Name:           req.Name,
		Role:           role,
		Purpose:        strings.TrimSpace(req.Purpose),
		Vendor:         strings.TrimSpace(req.Vendor),
		Department:     strings.TrimSpace(req.Department),
		Description:    strings.TrimSpace(req.Description),
	}

	if err := database.DB.Create(&system).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save system"})
		return
	}

	database.CreateAuditLog(actor(c), "system", system.PublicID.String(), "create", system.Name)
	c.JSON(http.StatusCreated, system)
}

func ListSystems(c *gin.Context) {
	var systems []models.AISystem
	q := database.DB.Order("name asc")
	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
			return
		}
		var org models.Organization
		if err := database.DB.Where("public_id = ?", orgID).First(&org).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		q = q.Where("organization_id = ?", org.ID)
	}
	q.Find(&systems)
	c.JSON(http.StatusOK, systems)
}

func ShowSystem(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	current, err := classLedger.Current(c.Request.Context(), system.ID)
	if err != nil {
		var integrity *engine.HistoryIntegrityError
		if errors.As(err, &integrity) {
			c.JSON(http.StatusConflict, gin.H{"error": integrity.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read classification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"system":         system,
		"classification": current, // null, если оценка ещё не проводилась
	})
}
