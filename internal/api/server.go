package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/giftwise/giftwise-cli/internal/gemini"
	"github.com/giftwise/giftwise-cli/internal/store"
)

// Server exposes the gift planner over HTTP. Handlers operate on an injected
// store so tests can run against a throwaway data directory.
type Server struct {
	store *store.Store
	ai    *gemini.Client
}

// NewServer wires a REST server around the given store. The AI client may be
// nil, in which case the /ai routes respond 503.
func NewServer(s *store.Store, ai *gemini.Client) *Server {
	return &Server{store: s, ai: ai}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := r.Group("/v1")
	{
		v1.GET("/projects", s.listProjects)
		v1.POST("/projects", s.createProject)
		v1.PUT("/projects/:id", s.renameProject)
		v1.DELETE("/projects/:id", s.deleteProject)
		v1.POST("/projects/:id/activate", s.activateProject)
		v1.PUT("/project/limit", s.setLimit)

		v1.GET("/people", s.listPeople)
		v1.POST("/people", s.createPerson)
		v1.DELETE("/people/:id", s.deletePerson)
		v1.PUT("/people/:id/budget", s.setBudget)
		v1.PUT("/people/:id/profile", s.updateProfile)

		v1.GET("/gifts", s.listGifts)
		v1.POST("/gifts", s.createGift)
		v1.PUT("/gifts/:id", s.updateGift)
		v1.DELETE("/gifts/:id", s.deleteGift)
		v1.PUT("/gifts/:id/status", s.cycleStatus)

		v1.GET("/stats", s.projectStats)

		v1.GET("/backup", s.exportBackup)
		v1.POST("/backup", s.importBackup)

		v1.POST("/ai/people/:id/ideas", s.generateIdeas)
		v1.POST("/ai/people/:id/strategy", s.generateStrategy)
		v1.POST("/ai/people/:id/extract", s.extractProfile)
		v1.POST("/ai/gifts/:id/analyze", s.analyzeGift)
	}

	return r
}

// Run starts the server on the given host and port.
func (s *Server) Run(host string, port int) error {
	return s.Router().Run(fmt.Sprintf("%s:%d", host, port))
}
