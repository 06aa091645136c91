package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// WorkoutRequest selects a workout either explicitly or through the
// questionnaire answers. Answers win when both are present.
type WorkoutRequest struct {
	Modality  domain.Modality     `json:"modality" binding:"omitempty,oneof=running strength"`
	Objective domain.Objective    `json:"objective" binding:"omitempty,oneof=5km 10km weight-loss hypertrophy"`
	Profile   *domain.UserProfile `json:"profile"`
	Answers   service.Answers     `json:"answers"`
}

var errSelectionRequired = errors.New("modality and objective, or questionnaire answers, are required")

func (r *WorkoutRequest) selection() (*service.Selection, error) {
	if len(r.Answers) > 0 {
		return service.ParseAnswers(r.Answers)
	}
	if r.Modality == "" || r.Objective == "" {
		return nil, errSelectionRequired
	}
	sel := &service.Selection{Modality: r.Modality, Objective: r.Objective}
	if r.Profile != nil {
		sel.Profile = *r.Profile
	}
	return sel, nil
}

func (h *WorkoutHandler) bindSelection(c *gin.Context) (*service.Selection, *domain.UserProfile, bool) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return nil, nil, false
	}
	sel, err := req.selection()
	if err != nil {
		if errors.Is(err, errSelectionRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithServiceError(c, err)
		}
		return nil, nil, false
	}
	var profile *domain.UserProfile
	if len(req.Answers) > 0 || req.Profile != nil {
		profile = &sel.Profile
	}
	return sel, profile, true
}

// Options lists the workouts a user can pick from.
func (h *WorkoutHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.workoutService.Options())
}

func (h *WorkoutHandler) Questionnaire(c *gin.Context) {
	c.JSON(http.StatusOK, service.Questions())
}

// Preview generates a workout without saving it.
func (h *WorkoutHandler) Preview(c *gin.Context) {
	sel, profile, ok := h.bindSelection(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.Preview(sel.Modality, sel.Objective, profile)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Create generates and saves the caller's active workout.
func (h *WorkoutHandler) Create(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	sel, profile, ok := h.bindSelection(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.Create(c.Request.Context(), ns, sel.Modality, sel.Objective, profile)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) Current(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.Current(c.Request.Context(), ns)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Delete removes the workout and its progress.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), ns); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
