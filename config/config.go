package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/999NK/teste2nutria-sub000/logger"
	"github.com/999NK/teste2nutria-sub000/models"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var Redis *redis.Client

func InitDB() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on environment", zap.Error(err))
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.Meal{},
		&models.MealFood{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Plan{},
		&models.DailyNutritionSnapshot{},
	)
	if err != nil {
		logger.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

// InitRedis connects the client used for per-user chat history. Redis is
// optional: without it chat still works, just without conversation memory.
func InitRedis() {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		logger.Warn("REDIS_HOST not set, chat history disabled")
		return
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	Redis = client
}
