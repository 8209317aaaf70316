package main

import (
	"os"

	"github.com/999NK/teste2nutria-sub000/config"
	"github.com/999NK/teste2nutria-sub000/logger"
	"github.com/999NK/teste2nutria-sub000/routes"

	"go.uber.org/zap"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	config.InitDB()
	config.InitRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
