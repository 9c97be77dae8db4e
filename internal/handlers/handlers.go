package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ai-compliance/internal/cache"
	"ai-compliance/internal/catalog"
	"ai-compliance/internal/database"
	"ai-compliance/internal/ledger"
	"ai-compliance/internal/models"
)

// зависимости уровня пакета, заполняются при старте из cmd/server
var (
	controlCatalog *catalog.Catalog
	classLedger    *ledger.Ledger
	resultCache    *cache.ResultCache // nil = кеш выключен
)

func Init(cat *catalog.Catalog, led *ledger.Ledger, rc *cache.ResultCache) {
	controlCatalog = cat
	classLedger = led
	resultCache = rc
}

func actor(c *gin.Context) string {
	if v, ok := c.Get("Actor"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "system"
}

// findSystem достаёт систему по публичному UUID из пути.
// При ошибке сам пишет ответ и возвращает false.
func findSystem(c *gin.Context) (models.AISystem, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid system id"})
		return models.AISystem{}, false
	}

	var system models.AISystem
	if err := database.DB.Where("public_id = ?", id).First(&system).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "system not found"})
		return models.AISystem{}, false
	}
	return system, true
}
