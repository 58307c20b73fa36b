package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/scheduler"
)

// SweepRunner is implemented by scheduler.Sweep.
type SweepRunner interface {
	Run(ctx context.Context) (*scheduler.SweepResult, error)
}

type SweepHandler struct {
	sweep SweepRunner
}

func NewSweepHandler(sweep SweepRunner) *SweepHandler {
	return &SweepHandler{sweep: sweep}
}

// POST /internal/sweep
// Invoked by the hosted cron with no parameters. Returns the processed
// count and a per-item status list; a sweep-level failure returns 500
// with the error, and any flags committed before it stay committed.
func (h *SweepHandler) Run(c *gin.Context) {
	result, err := h.sweep.Run(c.Request.Context())
	if err != nil {
		log.Printf("[sweep][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
