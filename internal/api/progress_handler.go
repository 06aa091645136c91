package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"alcyxob/workout-tracker/internal/export"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultRecentDays  = 7
	defaultRecentWeeks = 8
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ProgressHandler struct {
	workoutService    service.WorkoutService
	progressService   service.ProgressService
	completionService service.CompletionService
	metricsManager    *metrics.Manager
}

func NewProgressHandler(
	workoutService service.WorkoutService,
	progressService service.ProgressService,
	completionService service.CompletionService,
	metricsManager *metrics.Manager,
) *ProgressHandler {
	return &ProgressHandler{
		workoutService:    workoutService,
		progressService:   progressService,
		completionService: completionService,
		metricsManager:    metricsManager,
	}
}

// Summary returns the dashboard view of the active workout's progress.
// Query: recent (days, default 7), weeks (default 8).
func (h *ProgressHandler) Summary(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	recent, err := queryInt(c, "recent", defaultRecentDays)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weeks, err := queryInt(c, "weeks", defaultRecentWeeks)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.Current(c.Request.Context(), ns)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	summary, err := h.progressService.Summary(c.Request.Context(), ns, workout.ID, recent, weeks)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Complete credits today for the active workout.
func (h *ProgressHandler) Complete(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	result, err := h.completionService.Complete(c.Request.Context(), ns)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	h.metricsManager.ObserveCompletion(result.Completion.Credited)
	c.JSON(http.StatusOK, result)
}

// Export downloads the progress ledger as an xlsx workbook.
func (h *ProgressHandler) Export(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.Current(c.Request.Context(), ns)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	progress, err := h.progressService.GetProgress(c.Request.Context(), ns, workout.ID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.ProgressWorkbook(&buf, workout, progress); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="progress-%s.xlsx"`, workout.ID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("query parameter %s must be a non-negative integer", name)
	}
	return n, nil
}
