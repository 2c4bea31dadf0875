package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listTemplates(c *gin.Context) {
	list := s.templates.All()
	if industry := c.Query("industry"); industry != "" {
		list = s.templates.ByIndustry(industry)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "templates": list, "count": len(list)})
}

func (s *Server) listIndustries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "industries": s.templates.Industries()})
}

func (s *Server) getTemplate(c *gin.Context) {
	t, ok := s.templates.ByID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "Template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "template": t})
}
