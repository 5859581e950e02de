package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/logger"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/schema"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
		_ = migrateCmd.Parse(os.Args[2:])
		os.Exit(runMigrate())
	}
	if len(os.Args) > 1 && os.Args[1] == "create-user" {
		createUserCmd := flag.NewFlagSet("create-user", flag.ExitOnError)
		email := createUserCmd.String("email", "", "Email address (required)")
		firstName := createUserCmd.String("first-name", "", "First name")
		lastName := createUserCmd.String("last-name", "", "Last name")
		phone := createUserCmd.String("phone", "", "Phone number")
		role := createUserCmd.String("role", user.RoleOwner, "owner, agent or admin")
		_ = createUserCmd.Parse(os.Args[2:])

		u := &user.User{FirstName: *firstName, LastName: *lastName, Email: *email, Role: *role}
		if *phone != "" {
			u.Phone = phone
		}
		os.Exit(runCreateUser(u))
	}
	startServer()
}

// runMigrate applies the schema and reports failure through the exit code.
func runMigrate() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Failed to load configuration: %v", err)
		return 1
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Printf("FATAL: Failed to initialize logger: %v", err)
		return 1
	}
	defer func() { _ = appLogger.Sync() }()

	db, cleanup, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to open database", zap.Error(err))
		return 1
	}
	defer cleanup()

	if err := schema.Apply(db, appLogger); err != nil {
		appLogger.Error("Schema migration failed", zap.Error(err))
		return 1
	}
	appLogger.Info("Schema migration completed successfully.")
	return 0
}

// runCreateUser registers an owner or agent so listings can be linked to it.
func runCreateUser(u *user.User) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Failed to load configuration: %v", err)
		return 1
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Printf("FATAL: Failed to initialize logger: %v", err)
		return 1
	}
	defer func() { _ = appLogger.Sync() }()

	db, cleanup, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to open database", zap.Error(err))
		return 1
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := user.NewGORMRepository(db).Create(ctx, u); err != nil {
		appLogger.Error("Failed to create user", zap.String("email", u.Email), zap.Error(err))
		return 1
	}
	appLogger.Info("User created", zap.String("id", u.ID.String()), zap.String("email", u.Email), zap.String("role", u.Role))
	return 0
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
}
