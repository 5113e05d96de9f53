package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	database "github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/db"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/storage"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/api/handlers"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/api/middleware"
)

type Server struct {
	cfg     *config.Config
	db      *database.Client
	storage *storage.Client
	browse  *browse.Service
	router  *gin.Engine
}

func New(cfg *config.Config, db *database.Client, store *storage.Client, shelves *browse.Service) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode) // Set to Release for production
	}

	middleware.Init(cfg.Auth.JWTSecret)

	s := &Server{
		cfg:     cfg,
		db:      db,
		storage: store,
		browse:  shelves,
		router:  gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.SilentLogger())
	s.router.Use(gin.Recovery())

	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	// IMPORTANT: "Authorization" must be allowed so the frontend can send the JWT
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// 1. Initialize Modular Handlers
	authHandler := handlers.NewAuthHandler(s.db.DB, s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTLHours)
	browseHandler := handlers.NewBrowseHandler(s.browse)
	statsHandler := handlers.NewStatsHandler(s.db.DB, s.browse)
	trackHandler := handlers.NewTrackHandler(s.db.DB)
	playlistHandler := handlers.NewPlaylistHandler(s.db.DB)
	tableHandler := handlers.NewTableHandler(s.db.DB)
	coverHandler := handlers.NewCoverHandler(s.storage)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "orchids-music"})
	})

	// Cover art, served straight from the storage backend
	s.router.GET("/covers/*path", coverHandler.GetCover)

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		// ==========================================
		// PUBLIC ROUTES (No Token Required)
		// ==========================================
		v1.POST("/auth/login", authHandler.Login)

		v1.GET("/browse", browseHandler.GetBrowse)
		v1.GET("/stats", statsHandler.GetStats)
		v1.GET("/tracks", trackHandler.GetTracks)
		v1.GET("/tracks/:id", trackHandler.GetTrack)

		// ==========================================
		// PROTECTED ROUTES (JWT Token Required)
		// ==========================================
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth()) // Checks for valid JWT
		{
			// --- ADMIN ONLY ---
			// Only Admins can register new users or browse the raw schema.
			protected.POST("/auth/register", middleware.RequireRole("admin"), authHandler.Register)
			protected.GET("/tables", middleware.RequireRole("admin"), tableHandler.ListTables)

			// --- ANY SIGNED-IN USER ---
			protected.POST("/tracks/:id/play", trackHandler.RecordPlay)

			// --- EDITORS (Content Curators) ---
			protected.PUT("/tracks/:id", middleware.RequireRole("editor"), trackHandler.UpdateTrack)
			protected.DELETE("/tracks/:id", middleware.RequireRole("editor"), trackHandler.DeleteTrack)

			protected.GET("/playlists", playlistHandler.GetPlaylists)
			protected.GET("/playlists/:id", playlistHandler.GetPlaylist)
			protected.POST("/playlists", middleware.RequireRole("editor"), playlistHandler.CreatePlaylist)
			protected.PUT("/playlists/:id", middleware.RequireRole("editor"), playlistHandler.UpdatePlaylist)
			protected.PUT("/playlists/:id/tracks", middleware.RequireRole("editor"), playlistHandler.UpdatePlaylistTracks)
			protected.DELETE("/playlists/:id", middleware.RequireRole("editor"), playlistHandler.DeletePlaylist)

			// Generic row writes, used by the SQL agent and seed tooling
			protected.POST("/tables/:table/rows", middleware.RequireRole("editor"), tableHandler.InsertRow)
		}
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
