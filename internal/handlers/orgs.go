package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

type createOrgRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Country  string `json:"country"`
	Notes    string `json:"notes"`
}

func CreateOrganization(c *gin.Context) {
	var req createOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization name must be at least 3 characters"})
		return
	}

	org := models.Organization{
		PublicID: uuid.New(),
		Name:     req.Name,
		Industry: strings.TrimSpace(req.Industry),
		Country:  strings.TrimSpace(req.Country),
		Notes:    strings.TrimSpace(req.Notes),
	}

	if err := database.DB.Create(&org).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save organization"})
		return
	}

	database.CreateAuditLog(actor(c), "organization", org.PublicID.String(), "create", org.Name)
	c.JSON(http.StatusCreated, org)
}

func ListOrganizations(c *gin.Context) {
	var orgs []models.Organization
	database.DB.Order("name asc").Find(&orgs)
	c.JSON(http.StatusOK, orgs)
}
