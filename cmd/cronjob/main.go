package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"carrental-backend/internal/config"
	"carrental-backend/internal/events"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'maintenance-due', 'pickup-reminders')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories and Services
	store := postgres.NewStore(db)
	noteSvc := service.NewNotificationService(store, events.NopPublisher{})
	jobRunner := jobs.New(store, noteSvc)

	// Run-once mode for manual invocation and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "maintenance-due":
			jobRunner.MaintenanceDueReminders()
		case "pickup-reminders":
			jobRunner.PickupReminders()
		case "all":
			jobRunner.MaintenanceDueReminders()
			jobRunner.PickupReminders()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	// Schedule recurring jobs
	sched := scheduler.New()
	if err := sched.Add("maintenance_due_reminders", cfg.Scheduler.MaintenanceDueReminders, jobRunner.MaintenanceDueReminders); err != nil {
		log.Fatalf("Failed to schedule job: %v", err)
	}
	if err := sched.Add("pickup_reminders", cfg.Scheduler.PickupReminders, jobRunner.PickupReminders); err != nil {
		log.Fatalf("Failed to schedule job: %v", err)
	}
	sched.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	logger.Info("Cronjob runner stopped")
}
