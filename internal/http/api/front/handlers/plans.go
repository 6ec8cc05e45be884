package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"gorm.io/gorm"
)

// PlanFrontHandler serves plan-related front endpoints.
type PlanFrontHandler struct {
	db *gorm.DB
}

// NewPlanFrontHandler constructs a PlanFrontHandler.
func NewPlanFrontHandler(db *gorm.DB) *PlanFrontHandler {
	return &PlanFrontHandler{db: db}
}

// List returns enabled plans in tier order.
func (h *PlanFrontHandler) List(c *gin.Context) {
	var plans []models.Plan
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("is_enabled = ?", true).
		Order("rank ASC, sort_order ASC").
		Find(&plans).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list plans failed"})
		return
	}

	out := make([]gin.H, 0, len(plans))
	for _, plan := range plans {
		out = append(out, gin.H{
			"tier":        plan.Tier,
			"name":        plan.Name,
			"month_price": plan.MonthPrice,
			"description": plan.Description,
			"price_id":    plan.PriceID,
			"features":    plan.Features,
			"sort_order":  plan.SortOrder,
		})
	}

	c.JSON(http.StatusOK, gin.H{"plans": out})
}
