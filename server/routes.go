package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/slikit/component"
	"github.com/kbukum/slikit/sli"
	"github.com/kbukum/slikit/version"
)

type sliSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Metric      string `json:"metric"`
	TestOnly    bool   `json:"test_only,omitempty"`
	Running     bool   `json:"running"`
}

type sliDetail struct {
	sliSummary
	Requires []string `json:"requires,omitempty"`
}

func (s *Server) registerRoutes(slis *sli.Registry, pipelines PipelineSource, components *component.Registry) {
	s.engine.GET("/healthz", s.handleHealth(components))
	s.engine.GET("/slis", s.handleListSLIs(slis, pipelines))
	s.engine.GET("/slis/:name", s.handleGetSLI(slis, pipelines))
	s.engine.GET("/version", s.handleVersion)
}

// handleHealth reports per-component health. Any unhealthy component
// turns the response into a 503.
func (s *Server) handleHealth(components *component.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := components.HealthAll(c.Request.Context())

		overall := component.StatusHealthy
		for _, h := range checks {
			switch h.Status {
			case component.StatusUnhealthy:
				overall = component.StatusUnhealthy
			case component.StatusDegraded:
				if overall == component.StatusHealthy {
					overall = component.StatusDegraded
				}
			}
		}

		status := http.StatusOK
		if overall == component.StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":     overall,
			"components": checks,
		})
	}
}

func (s *Server) handleListSLIs(slis *sli.Registry, pipelines PipelineSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		running := runningSet(pipelines)

		out := make([]sliSummary, 0)
		for _, d := range slis.All() {
			out = append(out, summarize(d, running))
		}
		c.JSON(http.StatusOK, gin.H{"slis": out})
	}
}

func (s *Server) handleGetSLI(slis *sli.Registry, pipelines PipelineSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := slis.Get(c.Param("name"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sliDetail{
			sliSummary: summarize(d, runningSet(pipelines)),
			Requires:   d.Requires,
		})
	}
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

func summarize(d *sli.Declaration, running map[string]bool) sliSummary {
	return sliSummary{
		Name:        d.Name,
		Description: d.Description,
		Metric:      d.Metric(),
		TestOnly:    d.TestOnly,
		Running:     running[d.Name],
	}
}

func runningSet(pipelines PipelineSource) map[string]bool {
	set := make(map[string]bool)
	if pipelines == nil {
		return set
	}
	for _, name := range pipelines.Running() {
		set[name] = true
	}
	return set
}
