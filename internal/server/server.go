package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"redlist_dashboard/internal/cache"
	"redlist_dashboard/internal/taxon"
)

// Server exposes the aggregated dashboard data over HTTP. It only ever
// reads from the snapshot cache; ingestion runs as a separate process.
type Server struct {
	cache    *cache.Service
	registry []taxon.Config
	logger   *slog.Logger
}

func New(cacheService *cache.Service, registry []taxon.Config, logger *slog.Logger) *Server {
	return &Server{
		cache:    cacheService,
		registry: registry,
		logger:   logger,
	}
}

// Router builds the gin engine with all dashboard routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/taxa", s.listTaxa)
		api.GET("/taxa/:id/species", s.listSpecies)
		api.GET("/taxa/:id/stats", s.taxonStats)
		api.GET("/taxa/:id/occurrences", s.listOccurrences)
		api.GET("/summary", s.summary)
	}

	return r
}
