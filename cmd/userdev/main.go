package main

import (
	"os"

	"github.com/meanstack/userapi/internal/server"
	"github.com/meanstack/userapi/internal/users/repository"
	"github.com/meanstack/userapi/internal/users/service"
	"github.com/meanstack/userapi/pkg/logger"
)

// userdev serves the users API from an in-memory store. Handy for frontend work
// without a MongoDB deployment; data is lost on exit.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("USERDEV_PORT")
	if port == "" {
		port = "5210"
	}

	svc := service.New(repository.NewMemoryRepo(), nil)
	r := server.NewRouter(svc, server.Options{AllowOrigin: os.Getenv("CORS_ALLOW_ORIGIN")})

	logger.Infof("userdev (memory store) listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("userdev: %v", err)
	}
}
