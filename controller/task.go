package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bounce/service"
)

// TaskController exposes the scheduled jobs for manual runs.
type TaskController struct {
	sweep *service.SweepService
}

func NewTaskController(sweep *service.SweepService) *TaskController {
	return &TaskController{sweep: sweep}
}

// Sweep runs the trial-expiry sweep on demand.
func (ctrl *TaskController) Sweep(c *gin.Context) {
	requestId := c.GetString("requestId")
	logger.Infof("[%s] running trial sweep", requestId)

	expired, err := ctrl.sweep.ExpireTrials(c.Request.Context())
	if err != nil {
		logger.Warnf("[%s] trial sweep error, %s", requestId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run sweep"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

// Health is the liveness probe.
func (ctrl *TaskController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
