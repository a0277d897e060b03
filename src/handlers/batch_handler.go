package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"schnorr-batch/src/history"
	"schnorr-batch/src/model"
	"schnorr-batch/src/types/incoming"
	"schnorr-batch/src/verification"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRunsLimit = 1000

type BatchHandler struct {
	service verification.BatchVerificationService
	runs    history.BatchRunService
}

// NewBatchHandler builds the HTTP surface. runs may be nil when history is
// disabled; the run endpoints then answer 503.
func NewBatchHandler(service verification.BatchVerificationService, runs history.BatchRunService) *BatchHandler {
	return &BatchHandler{
		service: service,
		runs:    runs,
	}
}

// VerifyFromFiles runs a batch over the configured ACL and payload files.
// Rejected and aborted runs are still answered with 200; the body tells
// them apart.
func (h *BatchHandler) VerifyFromFiles(c *gin.Context) {
	requestId := c.DefaultQuery("request_id", uuid.NewString())

	result := h.service.RunFromFiles(c.Request.Context(), requestId, history.SourceHttp)
	c.JSON(http.StatusOK, result)
}

func (h *BatchHandler) VerifyRecords(c *gin.Context) {
	var req incoming.BatchRunRequestDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.RequestId == "" {
		req.RequestId = uuid.NewString()
	}

	if req.UseFiles {
		c.JSON(http.StatusOK, h.service.RunFromFiles(c.Request.Context(), req.RequestId, history.SourceHttp))
		return
	}

	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: records are empty"})
		return
	}

	result := h.service.RunRecords(c.Request.Context(), req.RequestId, req.DomainRecords(), history.SourceHttp)
	c.JSON(http.StatusOK, result)
}

func (h *BatchHandler) GetRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit > maxRunsLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit cannot exceed 1000"})
		return
	}

	outcome := c.Query("outcome")

	var runs []model.BatchRun
	var err error
	if outcome == "" {
		runs, err = h.runs.GetRuns(limit, offset)
	} else {
		runs, err = h.runs.GetRunsByOutcome(outcome, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch runs"})
		return
	}

	c.JSON(http.StatusOK, runs)
}

func (h *BatchHandler) GetRun(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	run, err := h.runs.GetRun(c.Param("run_id"))
	if errors.Is(err, history.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch run"})
		return
	}

	c.JSON(http.StatusOK, run)
}
