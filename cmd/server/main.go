package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"microgreens-planner/internal/config"
	"microgreens-planner/internal/controller"
	"microgreens-planner/internal/database"
	"microgreens-planner/internal/middleware"
	"microgreens-planner/internal/repository"
	"microgreens-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	seed := flag.Bool("seed", false, "seed the database with sample data and exit")
	flag.Parse()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if *seed {
		if err := repository.NewSeedRepository(db).SeedDatabase(); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		return
	}

	cropRepo := repository.NewCropRepository(db)
	trayRepo := repository.NewTrayRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	alertService := service.NewAlertService(logger)
	trayService := service.NewTrayService(trayRepo, logger)
	plannerService := service.NewPlannerService(cropRepo)
	calendarService := service.NewCalendarService(trayRepo, cropRepo, customerRepo, orderRepo, alertService, logger)

	cropController := controller.NewCropController(cropRepo, logger)
	trayController := controller.NewTrayController(trayRepo, cropRepo, trayService, logger)
	customerController := controller.NewCustomerController(customerRepo, logger)
	orderController := controller.NewOrderController(orderRepo, customerRepo, cropRepo, logger)
	scheduleController := controller.NewScheduleController(plannerService, calendarService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.StructuredLoggingMiddleware(logger))
	router.Use(corsMiddleware(cfg.CORSOrigins))

	v1 := router.Group("/v1")
	{
		v1.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		v1.GET("/metrics", middleware.MetricsHandler)

		crops := v1.Group("/crops")
		{
			crops.GET("", cropController.List)
			crops.POST("", cropController.Create)
			crops.GET("/:id", cropController.Get)
			crops.PUT("/:id", cropController.Update)
			crops.DELETE("/:id", cropController.Delete)
			crops.GET("/:id/harvest-plan", scheduleController.GetHarvestPlan)
			crops.GET("/:id/weekly-plan", scheduleController.GetWeeklyPlan)
		}

		trays := v1.Group("/trays")
		{
			trays.GET("", trayController.List)
			trays.POST("", trayController.Create)
			trays.GET("/:id", trayController.Get)
			trays.PUT("/:id", trayController.Update)
			trays.DELETE("/:id", trayController.Delete)
			trays.POST("/:id/advance", trayController.Advance)
			trays.POST("/:id/compost", trayController.Compost)
			trays.POST("/:id/harvest", trayController.Harvest)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", customerController.List)
			customers.POST("", customerController.Create)
			customers.GET("/:id", customerController.Get)
			customers.PUT("/:id", customerController.Update)
			customers.DELETE("/:id", customerController.Delete)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", orderController.List)
			orders.POST("", orderController.Create)
			orders.GET("/:id", orderController.Get)
			orders.DELETE("/:id", orderController.Delete)
		}

		v1.GET("/schedule", scheduleController.GetCalendar)
	}

	logger.Info("server starting", "port", cfg.HTTPPort)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

// corsMiddleware allows the configured frontend origins
func corsMiddleware(origins string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, o := range strings.Split(origins, ",") {
		allowed[strings.TrimSpace(o)] = true
	}
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
