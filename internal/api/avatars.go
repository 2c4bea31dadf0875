package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxCompared = 3

func (s *Server) listAvatars(c *gin.Context) {
	f := store.Filter{
		Industry: c.Query("industry"),
		Search:   c.Query("search"),
	}
	if v, ok := c.GetQuery("isTemplate"); ok {
		isTemplate := v == "true"
		f.IsTemplate = &isTemplate
	}

	avatars, err := s.avatars.List(c.Request.Context(), f)
	if err != nil {
		s.logger.Error("GET avatars error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to fetch avatars")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"avatars": avatars,
		"count":   len(avatars),
	})
}

func (s *Server) saveAvatar(c *gin.Context) {
	var avatar models.Avatar
	if err := c.ShouldBindJSON(&avatar); err != nil {
		fail(c, http.StatusBadRequest, "Invalid avatar")
		return
	}
	if avatar.ID == "" {
		avatar.ID = s.newID()
	}
	if avatar.CreatedAt == "" {
		avatar.CreatedAt = s.timestamp()
		avatar.UpdatedAt = avatar.CreatedAt
	}

	if err := s.avatars.Save(c.Request.Context(), &avatar); err != nil {
		s.logger.Error("POST avatar error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to save avatar")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"avatar":  avatar,
		"message": "Avatar saved successfully",
	})
}

func (s *Server) getAvatar(c *gin.Context) {
	avatar, err := s.avatars.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "Avatar not found")
		return
	}
	if err != nil {
		s.logger.Error("GET avatar error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to fetch avatar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatar": avatar})
}

func (s *Server) updateAvatar(c *gin.Context) {
	var update models.AvatarUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		fail(c, http.StatusBadRequest, "Invalid avatar update")
		return
	}

	avatar, err := s.avatars.Update(c.Request.Context(), c.Param("id"), update)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "Avatar not found")
		return
	}
	if err != nil {
		s.logger.Error("PUT avatar error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to update avatar")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"avatar":  avatar,
		"message": "Avatar updated successfully",
	})
}

func (s *Server) deleteAvatar(c *gin.Context) {
	if err := s.avatars.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.logger.Error("DELETE avatar error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to delete avatar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Avatar deleted successfully"})
}

func (s *Server) duplicateAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	orig, err := s.avatars.Get(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "Avatar not found")
		return
	}
	if err != nil {
		s.logger.Error("duplicate avatar error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to duplicate avatar")
		return
	}

	dup := orig.Duplicate(s.newID(), s.now())
	if err := s.avatars.Save(ctx, &dup); err != nil {
		s.logger.Error("duplicate avatar error", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to duplicate avatar")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"avatar":  dup,
		"message": "Avatar duplicated successfully",
	})
}

// compareAvatars loads up to three avatars for side-by-side display.
func (s *Server) compareAvatars(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		fail(c, http.StatusBadRequest, "At least one avatar id is required")
		return
	}
	if len(ids) > maxCompared {
		fail(c, http.StatusBadRequest, "At most 3 avatars can be compared")
		return
	}

	avatars := make([]models.Avatar, 0, len(ids))
	for _, id := range ids {
		a, err := s.avatars.Get(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "Avatar not found")
			return
		}
		if err != nil {
			s.logger.Error("compare avatars error", zap.Error(err))
			fail(c, http.StatusInternalServerError, "Failed to fetch avatars")
			return
		}
		avatars = append(avatars, *a)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatars": avatars})
}
