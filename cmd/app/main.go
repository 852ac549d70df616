package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"freight/cmd"
	"freight/internal/adapters/out/postgres/escrowledger"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/registryrepo"
	"freight/internal/adapters/out/postgres/reputationrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/adapters/out/postgres/trackingrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/registry"
	"freight/internal/jobs"
	"freight/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err = migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err = seedRegistry(db, configs.RegistryAdminID); err != nil {
		log.Fatalf("Failed to seed authorization registry: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db)
	defer app.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateRelayOutboxCommandHandler(),
		app.CreateGetEscrowAnomaliesQueryHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:       goDotEnvVariable("KAFKA_HOST"),
		KafkaEventTopic: goDotEnvVariable("KAFKA_EVENT_TOPIC"),
		RedisAddr:       goDotEnvVariable("REDIS_ADDR"),
		RegistryAdminID: goDotEnvVariable("REGISTRY_ADMIN_ID"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&trackingrepo.ShipmentEventDTO{},
		&trackingrepo.StatusChangeDTO{},
		&reputationrepo.CarrierStatsDTO{},
		&registryrepo.RegistryEntryDTO{},
		&outboxrepo.OutboxMessageDTO{},
		&escrowledger.EscrowAccountDTO{},
		&escrowledger.EscrowMovementDTO{},
	)
}

// seedRegistry ensures the authorization registry has an admin. The first
// admin identity comes from configuration; an already seeded registry is left
// untouched.
func seedRegistry(db *gorm.DB, adminID string) error {
	repo := registryrepo.NewGormRegistryRepository(db)

	_, err := repo.Get(context.Background())
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	admin, err := kernel.UUIDFromString(adminID)
	if err != nil {
		return fmt.Errorf("REGISTRY_ADMIN_ID: %w", err)
	}

	seeded, err := registry.NewRegistry(admin)
	if err != nil {
		return err
	}

	return repo.Save(context.Background(), seeded)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
