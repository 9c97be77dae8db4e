package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-compliance/internal/database"
	"ai-compliance/internal/engine"
)

// loadSnapshotOrFail — общий кусок отчётных ручек: свежий снимок либо ответ
// с ошибкой. Пересчёт всегда от актуального состояния, без серверного
// состояния между запросами.
func loadSnapshotOrFail(c *gin.Context) (engine.Snapshot, bool) {
	system, ok := findSystem(c)
	if !ok {
		return engine.Snapshot{}, false
	}

	snap, err := database.LoadSnapshot(c.Request.Context(), system, classLedger, controlCatalog)
	if err != nil {
		var integrity *engine.HistoryIntegrityError
		var invalid *engine.InvalidSnapshotError
		switch {
		case errors.As(err, &integrity):
			c.JSON(http.StatusConflict, gin.H{"error": integrity.Error()})
		case errors.As(err, &invalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot"})
		}
		return engine.Snapshot{}, false
	}
	return snap, true
}

func ShowGaps(c *gin.Context) {
	snap, ok := loadSnapshotOrFail(c)
	if !ok {
		return
	}

	var gaps []engine.GapItem
	if resultCache.Get(c.Request.Context(), "gaps", snap.Hash(), &gaps) {
		c.JSON(http.StatusOK, gaps)
		return
	}

	gaps = engine.DetectGaps(snap)
	resultCache.Put(c.Request.Context(), "gaps", snap.Hash(), gaps)
	c.JSON(http.StatusOK, gaps)
}

func ShowReadiness(c *gin.Context) {
	snap, ok := loadSnapshotOrFail(c)
	if !ok {
		return
	}

	var score engine.ReadinessScore
	if resultCache.Get(c.Request.Context(), "readiness", snap.Hash(), &score) {
		c.JSON(http.StatusOK, score)
		return
	}

	score = engine.Score(snap)
	resultCache.Put(c.Request.Context(), "readiness", snap.Hash(), score)
	c.JSON(http.StatusOK, score)
}

func ShowProviderReadiness(c *gin.Context) {
	snap, ok := loadSnapshotOrFail(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.ProviderScore(snap.Artifacts))
}
