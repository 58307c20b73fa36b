package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/schedule"
)

// TaskReader is implemented by repository.TaskRepository.
type TaskReader interface {
	GetByID(ctx context.Context, taskID string) (*models.Task, error)
}

type TaskHandler struct {
	tasks TaskReader
}

func NewTaskHandler(tasks TaskReader) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GET /api/tasks/:id/occurrences?count=
// Previews the next due instants of a task for the "upcoming reminders"
// panel in the UI.
func (h *TaskHandler) Occurrences(c *gin.Context) {
	taskID := c.Param("id")
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil || count < 1 || count > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err != nil {
		log.Printf("[task][occurrences][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}

	occurrences, err := schedule.UpcomingOccurrences(task, time.Now(), count)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": task.TaskID, "occurrences": occurrences})
}
