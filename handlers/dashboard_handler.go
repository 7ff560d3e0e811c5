package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rivarora/hospital/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DashboardHandler handles HTTP requests for the dashboard and token views
type DashboardHandler struct {
	dashboardService *service.DashboardService
	wellnessService  *service.WellnessService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, wellnessService *service.WellnessService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		wellnessService:  wellnessService,
	}
}

// GetDashboard handles GET /api/dashboard/:userId
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	snapshot, err := h.dashboardService.Snapshot(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshot,
	})
}

// GetTokens handles GET /api/tokens/:userId
func (h *DashboardHandler) GetTokens(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	limit := 0
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("offset"); raw != "" {
		offset, _ = strconv.Atoi(raw)
	}

	result, err := h.dashboardService.LedgerHistory(c.Request.Context(), service.LedgerHistoryRequest{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"balance":      result.Balance,
			"transactions": result.Transactions,
		},
	})
}

// AdjustTokensRequest represents the request body for manual adjustments
type AdjustTokensRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// AdjustTokens handles POST /api/tokens/:userId/adjust
func (h *DashboardHandler) AdjustTokens(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid user ID format",
			},
		})
		return
	}

	var req AdjustTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.wellnessService.AdjustTokens(c.Request.Context(), service.AdjustTokensRequest{
		UserID: userID,
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"transaction": result.Transaction,
			"new_balance": result.NewBalance,
		},
	})
}
