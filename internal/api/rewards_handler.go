package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type RewardsHandler struct {
	rewardsService service.RewardsService
	metricsManager *metrics.Manager
}

func NewRewardsHandler(rewardsService service.RewardsService, metricsManager *metrics.Manager) *RewardsHandler {
	return &RewardsHandler{rewardsService: rewardsService, metricsManager: metricsManager}
}

type PointsResponse struct {
	Balance         int               `json:"balance"`
	TotalActivities int               `json:"totalActivities"`
	Activities      []domain.Activity `json:"activities"`
}

func (h *RewardsHandler) Points(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	ledger, err := h.rewardsService.Ledger(c.Request.Context(), ns)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PointsResponse{
		Balance:         ledger.Balance,
		TotalActivities: ledger.TotalActivities(),
		Activities:      ledger.Activities,
	})
}

// Products lists the store, optionally filtered by ?category=.
func (h *RewardsHandler) Products(c *gin.Context) {
	products, err := h.rewardsService.Products(domain.ProductCategory(c.Query("category")))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *RewardsHandler) Redeem(c *gin.Context) {
	ns, ok := namespaceFromContext(c)
	if !ok {
		return
	}
	redemption, err := h.rewardsService.Redeem(c.Request.Context(), ns, c.Param("productId"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	h.metricsManager.CounterRedemptions.Inc()
	c.JSON(http.StatusOK, redemption)
}
