package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanproservices/cleanpro-api/internal/config"
	dbpkg "github.com/cleanproservices/cleanpro-api/internal/db"
	"github.com/cleanproservices/cleanpro-api/internal/ratelimit"
	"github.com/cleanproservices/cleanpro-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	limiter := ratelimit.NewStore(cfg.RedisURL)

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, limiter)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
