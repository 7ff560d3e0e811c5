package handlers

import (
	"errors"
	"net/http"

	"github.com/Rivarora/hospital/models"
	"github.com/Rivarora/hospital/repository"
	"github.com/Rivarora/hospital/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaperworkHandler handles HTTP requests for AI-generated hospital forms
type PaperworkHandler struct {
	wellnessService *service.WellnessService
	analysisService *service.AnalysisService
	userService     *service.UserService
	paperworkRepo   *repository.PaperworkRepository
}

// NewPaperworkHandler creates a new paperwork handler
func NewPaperworkHandler(
	wellnessService *service.WellnessService,
	analysisService *service.AnalysisService,
	userService *service.UserService,
	paperworkRepo *repository.PaperworkRepository,
) *PaperworkHandler {
	return &PaperworkHandler{
		wellnessService: wellnessService,
		analysisService: analysisService,
		userService:     userService,
		paperworkRepo:   paperworkRepo,
	}
}

// GeneratePaperworkRequest represents the request body for form generation
type GeneratePaperworkRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	FormKind     string `json:"form_kind" binding:"required"`
	HospitalName string `json:"hospital_name" binding:"required"`
	DoctorName   string `json:"doctor_name"`
}

// GeneratePaperwork handles POST /api/paperwork. Form content is generated
// first; the reward engine then stores it and awards tokens atomically.
func (h *PaperworkHandler) GeneratePaperwork(c *gin.Context) {
	var req GeneratePaperworkRequest
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

	kind := models.FormKind(req.FormKind)
	if !models.ValidFormKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown form kind: " + req.FormKind,
			},
		})
		return
	}

	ctx := c.Request.Context()
	userResult, err := h.userService.GetUser(ctx, service.GetUserRequest{ID: userID})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	content := h.analysisService.GeneratePaperwork(ctx, userResult.User, kind, req.HospitalName, req.DoctorName)

	result, err := h.wellnessService.RecordPaperwork(ctx, service.RecordPaperworkRequest{
		UserID:   userID,
		FormKind: kind,
		Content:  content,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"template":       result.Template,
			"tokens_awarded": result.TokensAwarded,
			"new_balance":    result.NewBalance,
		},
	})
}

// ListPaperwork handles GET /api/paperwork/:userId
func (h *PaperworkHandler) ListPaperwork(c *gin.Context) {
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

	templates, err := h.paperworkRepo.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    templates,
	})
}

// SetFavoriteRequest represents the request body for marking a template
type SetFavoriteRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Favorite *bool  `json:"favorite" binding:"required"`
}

// SetFavorite handles PUT /api/paperwork/:id/favorite
func (h *PaperworkHandler) SetFavorite(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid template ID format",
			},
		})
		return
	}

	var req SetFavoriteRequest
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

	if err := h.paperworkRepo.SetFavorite(c.Request.Context(), id, userID, *req.Favorite); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = service.ErrTemplateNotFound
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"favorite": *req.Favorite,
		},
	})
}
