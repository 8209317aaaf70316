package routes

import (
	"context"
	"os"

	"github.com/999NK/teste2nutria-sub000/config"
	"github.com/999NK/teste2nutria-sub000/controllers"
	"github.com/999NK/teste2nutria-sub000/logger"
	"github.com/999NK/teste2nutria-sub000/middlewares"
	"github.com/999NK/teste2nutria-sub000/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	foodSvc := services.NewFoodService(config.DB)
	mealSvc := services.NewMealService(config.DB, foodSvc)
	recipeSvc := services.NewRecipeService(config.DB, foodSvc)
	aggSvc := services.NewAggregationService(config.DB)
	planSvc := services.NewPlanService(config.DB)

	hub := services.NewProgressHub()
	services.InitProgressDeps(aggSvc, hub)

	history := services.NewChatHistoryStore(config.Redis)
	aiSvc, err := services.NewAIService(context.Background(), os.Getenv("GEMINI_API_KEY"), history)
	if err != nil {
		logger.Warn("AI features disabled", zap.Error(err))
		aiSvc = nil
	}

	foodCtl := controllers.NewFoodController(foodSvc)
	mealCtl := controllers.NewMealController(mealSvc)
	recipeCtl := controllers.NewRecipeController(recipeSvc)
	progressCtl := controllers.NewProgressController(aggSvc)
	planCtl := controllers.NewPlanController(planSvc, aiSvc)
	chatCtl := controllers.NewChatController(aiSvc)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected API
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user/profile", controllers.GetProfile)
		api.PUT("/user/profile", controllers.UpdateProfile)
		api.GET("/user/goals", controllers.GetGoals)
		api.PUT("/user/goals", controllers.UpdateGoals)

		api.GET("/foods", foodCtl.List)
		api.GET("/foods/search", foodCtl.Search)
		api.POST("/foods", foodCtl.Create)
		api.PUT("/foods/:id", foodCtl.Update)
		api.DELETE("/foods/:id", foodCtl.Delete)

		api.GET("/meals", mealCtl.List)
		api.POST("/meals", mealCtl.Log)
		api.GET("/meals/:id", mealCtl.Get)
		api.PUT("/meals/:id", mealCtl.Update)
		api.DELETE("/meals/:id", mealCtl.Delete)

		api.GET("/recipes", recipeCtl.List)
		api.POST("/recipes", recipeCtl.Create)
		api.GET("/recipes/:id", recipeCtl.Get)
		api.PUT("/recipes/:id", recipeCtl.Update)
		api.DELETE("/recipes/:id", recipeCtl.Delete)

		api.GET("/nutrition/daily", progressCtl.GetDaily)
		api.GET("/nutrition/history", controllers.GetNutritionHistory)
		api.GET("/progress/hourly", progressCtl.GetHourly)
		api.GET("/progress/weekly", progressCtl.GetWeekly)
		api.GET("/progress/monthly", progressCtl.GetMonthly)

		api.GET("/user-plans", planCtl.List)
		api.POST("/user-plans", planCtl.Create)
		api.POST("/user-plans/generate", planCtl.Generate)
		api.GET("/user-plans/active", planCtl.ListActive)
		api.GET("/user-plans/history", planCtl.ListHistory)
		api.POST("/user-plans/:id/activate", planCtl.Activate)
		api.DELETE("/user-plans/:id", planCtl.Delete)

		api.POST("/chat", chatCtl.Post)
		api.DELETE("/chat/history", chatCtl.ClearHistory)

		api.GET("/ws/progress", rtCtl.ProgressWS)
	}

	return r
}
