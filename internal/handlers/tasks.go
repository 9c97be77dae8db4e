package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

type createTaskRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date"` // RFC3339, необязательно
}

func CreateTask(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if len(req.Title) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task title must be at least 3 characters"})
		return
	}

	priority := models.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task priority"})
		return
	}

	var due *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be RFC3339"})
			return
		}
		due = &parsed
	}

	task := models.Task{
		SystemID: system.ID,
		Title:    req.Title,
		Status:   models.TaskTodo,
		Priority: priority,
		DueDate:  due,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save task"})
		return
	}

	database.CreateAuditLog(actor(c), "task", strconv.Itoa(int(task.ID)), "create", task.Title)
	c.JSON(http.StatusCreated, task)
}

func ListTasks(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var tasks []models.Task
	database.DB.
		Where("system_id = ?", system.ID).
		Order("id asc").
		Find(&tasks)
	c.JSON(http.StatusOK, tasks)
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func UpdateTaskStatus(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	tid, err := strconv.Atoi(c.Param("tid"))
	if err != nil || tid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var task models.Task
	if err := database.DB.
		Where("id = ? AND system_id = ?", tid, system.ID).
		First(&task).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task status"})
		return
	}

	task.Status = status
	if err := database.DB.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save task status"})
		return
	}

	database.CreateAuditLog(actor(c), "task", strconv.Itoa(int(task.ID)), "status_change", string(status))
	c.JSON(http.StatusOK, task)
}
