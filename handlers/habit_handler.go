package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Rivarora/hospital/models"
	"github.com/Rivarora/hospital/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HabitHandler handles HTTP requests for daily habit logging
type HabitHandler struct {
	wellnessService  *service.WellnessService
	dashboardService *service.DashboardService
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(wellnessService *service.WellnessService, dashboardService *service.DashboardService) *HabitHandler {
	return &HabitHandler{
		wellnessService:  wellnessService,
		dashboardService: dashboardService,
	}
}

// LogHabitRequest represents the request body for logging one day's habits
type LogHabitRequest struct {
	UserID          string                `json:"user_id" binding:"required"`
	Date            string                `json:"date"` // YYYY-MM-DD, defaults to today
	SleepHours      *float64              `json:"sleep_hours"`
	ExerciseMinutes *int                  `json:"exercise_minutes"`
	Steps           *int                  `json:"steps"`
	WaterGlasses    *int                  `json:"water_glasses"`
	MoodRating      *int                  `json:"mood_rating"`
	StressLevel     *int                  `json:"stress_level"`
	WeightKg        *float64              `json:"weight_kg"`
	BloodPressure   *models.BloodPressure `json:"blood_pressure"`
	HeartRate       *int                  `json:"heart_rate"`
	Notes           *string               `json:"notes"`
}

// LogHabit handles POST /api/habits
func (h *HabitHandler) LogHabit(c *gin.Context) {
	var req LogHabitRequest
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

	userID, err := uuid.Parse(req.UserID)
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

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "Date must be in YYYY-MM-DD format",
				},
			})
			return
		}
	}

	svcReq := service.RecordHabitRequest{
		UserID: userID,
		Date:   date,
		Metrics: models.HabitMetrics{
			SleepHours:      req.SleepHours,
			ExerciseMinutes: req.ExerciseMinutes,
			Steps:           req.Steps,
			WaterGlasses:    req.WaterGlasses,
			MoodRating:      req.MoodRating,
			StressLevel:     req.StressLevel,
			WeightKg:        req.WeightKg,
			BloodPressure:   req.BloodPressure,
			HeartRate:       req.HeartRate,
			Notes:           req.Notes,
		},
	}

	result, err := h.wellnessService.RecordHabit(c.Request.Context(), svcReq)
	if errors.Is(err, service.ErrConcurrencyConflict) {
		// Lost a race with another write for the same user; one retry is
		// enough because the row lock serializes the second attempt.
		result, err = h.wellnessService.RecordHabit(c.Request.Context(), svcReq)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"entry":          result.Entry,
			"tokens_awarded": result.TokensAwarded,
			"new_balance":    result.NewBalance,
			"new_score":      result.NewScore,
		},
	})
}

// ListHabits handles GET /api/habits/:userId
func (h *HabitHandler) ListHabits(c *gin.Context) {
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
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := h.dashboardService.RecentHabits(c.Request.Context(), userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// GetAnalytics handles GET /api/habits/:userId/analytics
func (h *HabitHandler) GetAnalytics(c *gin.Context) {
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

	analytics, err := h.dashboardService.Analytics(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analytics,
	})
}
