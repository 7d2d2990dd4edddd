package main

import (
	"log"

	api "missioncontrol-backend/cmd/api"
	taskdomain "missioncontrol-backend/internal/task/domain"
	taskRepo "missioncontrol-backend/internal/task/repository"
	"missioncontrol-backend/internal/task/scheduler"
	usagedomain "missioncontrol-backend/internal/usage/domain"
	usageRepo "missioncontrol-backend/internal/usage/repository"
	"missioncontrol-backend/pkg/config"
	"missioncontrol-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&taskdomain.Task{}, &taskdomain.RecurringTask{}, &usagedomain.UsageSnapshot{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	recurringRepository := taskRepo.NewGormRecurringTaskRepository(db)
	snapshotRepository := usageRepo.NewGormUsageSnapshotRepository(db)

	// Start the recurring task materializer
	if cfg.SchedulerEnabled {
		recurringScheduler := scheduler.NewRecurringTaskScheduler(taskRepository, recurringRepository, cfg.SchedulerInterval)
		recurringScheduler.Start()
		defer recurringScheduler.Stop()
	} else {
		log.Println("[WARN] Recurring task scheduler disabled by config")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(taskRepository, recurringRepository, snapshotRepository)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
