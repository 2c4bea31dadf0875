package api

import (
	"net/http"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type researchRequest struct {
	BusinessInfo models.BusinessInfo   `json:"businessInfo"`
	Mode         models.GenerationMode `json:"mode"`
}

type generateRequest struct {
	BusinessInfo models.BusinessInfo   `json:"businessInfo"`
	ResearchData *models.ResearchData  `json:"researchData"`
	Mode         models.GenerationMode `json:"mode"`
}

// resolveMode applies the default for an omitted mode.
func resolveMode(mode, fallback models.GenerationMode) (models.GenerationMode, bool) {
	if mode == "" {
		return fallback, true
	}
	return mode, mode.Valid()
}

func (s *Server) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid business info")
		return
	}
	mode, ok := resolveMode(req.Mode, models.ModeComprehensive)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid generation mode")
		return
	}

	data := s.research.Aggregate(c.Request.Context(), req.BusinessInfo, mode)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": s.timestamp(),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid business info")
		return
	}
	mode, ok := resolveMode(req.Mode, models.ModeQuick)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid generation mode")
		return
	}

	ctx := c.Request.Context()
	var research models.ResearchData
	if req.ResearchData != nil {
		research = *req.ResearchData
	} else {
		research = s.research.Aggregate(ctx, req.BusinessInfo, mode)
	}

	avatar, err := s.generator.Assemble(ctx, req.BusinessInfo, research, mode)
	if err != nil {
		s.logger.Error("generation API error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Avatar generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"avatar":    avatar,
		"timestamp": s.timestamp(),
	})
}
