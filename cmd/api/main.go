package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odontolab/clinic-api/internal/config"
	dbpkg "github.com/odontolab/clinic-api/internal/db"
	"github.com/odontolab/clinic-api/internal/lock"
	"github.com/odontolab/clinic-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
