// Package api exposes research, generation, avatar storage and templates
// over HTTP.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/store"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/templates"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Researcher builds the research bundle for a business. It never fails.
type Researcher interface {
	Aggregate(ctx context.Context, info models.BusinessInfo, mode models.GenerationMode) models.ResearchData
}

// Generator assembles an avatar from business info and research.
type Generator interface {
	Assemble(ctx context.Context, info models.BusinessInfo, research models.ResearchData, mode models.GenerationMode) (*models.Avatar, error)
}

// AvatarStore persists avatars.
type AvatarStore interface {
	Save(ctx context.Context, a *models.Avatar) error
	Get(ctx context.Context, id string) (*models.Avatar, error)
	List(ctx context.Context, f store.Filter) ([]models.Avatar, error)
	Update(ctx context.Context, id string, u models.AvatarUpdate) (*models.Avatar, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	research  Researcher
	generator Generator
	avatars   AvatarStore
	templates *templates.Library
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Server) { s.newID = newID }
}

func NewServer(research Researcher, generator Generator, avatars AvatarStore, lib *templates.Library, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		research:  research,
		generator: generator,
		avatars:   avatars,
		templates: lib,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts the REST routes on r.
func (s *Server) Register(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/research", s.handleResearch)
	api.POST("/generate", s.handleGenerate)

	api.GET("/avatars", s.listAvatars)
	api.POST("/avatars", s.saveAvatar)
	api.GET("/avatars/compare", s.compareAvatars)
	api.GET("/avatars/:id", s.getAvatar)
	api.PUT("/avatars/:id", s.updateAvatar)
	api.DELETE("/avatars/:id", s.deleteAvatar)
	api.POST("/avatars/:id/duplicate", s.duplicateAvatar)

	api.GET("/templates", s.listTemplates)
	api.GET("/templates/industries", s.listIndustries)
	api.GET("/templates/:id", s.getTemplate)
}

func (s *Server) timestamp() string {
	return models.Timestamp(s.now())
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

const maxLoggedBody = 2048

// RequestLogger logs every request. Bodies are only logged at debug level.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if logger.Core().Enabled(zap.DebugLevel) && c.Request.Body != nil {
			body, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			if len(body) > maxLoggedBody {
				body = body[:maxLoggedBody]
			}
			logger.Debug("incoming request",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.ByteString("body", body))
		}

		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()))
	}
}
