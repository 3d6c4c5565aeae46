package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"cementops/cmd"
	httpin "cementops/internal/adapters/in/http"
	"cementops/internal/adapters/out/postgres/deliveryrepo"
	"cementops/internal/adapters/out/postgres/orderrepo"
	"cementops/internal/adapters/out/postgres/truckrepo"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultDailyProductionLimit = "1000"

func main() {
	configs := getConfigs()

	gormDB := connectDB(configs)
	migrateDB(gormDB)

	dailyLimit := parseDailyLimit(configs.DailyProductionLimit)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateGenerateScheduleQueryHandler(),
		dailyLimit,
		slog.Default(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, dailyLimit, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		DailyProductionLimit: goDotEnvVariable("DAILY_PRODUCTION_LIMIT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.ClientDTO{},
		&orderrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&truckrepo.TruckDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.DeliveryOrderDTO{},
		&deliveryrepo.DeliveryHistoryDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func parseDailyLimit(value string) kernel.Tonnage {
	if value == "" {
		value = defaultDailyProductionLimit
	}
	limit, err := kernel.ParseTonnage(value)
	if err != nil {
		log.Fatalf("Error parsing DAILY_PRODUCTION_LIMIT: %v", err)
	}
	return limit
}

func startWebServer(app cmd.CompositionRoot, dailyLimit kernel.Tonnage, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateUpdateDeliveryCommandHandler(),
		app.CreateCancelDeliveryCommandHandler(),
		app.CreateDeleteDeliveryCommandHandler(),
		app.CreateGenerateScheduleQueryHandler(),
		app.CreateGetDeliveryBoardQueryHandler(),
		app.CreateValidateAssignmentQueryHandler(),
		dailyLimit,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
