package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmoralesv/AgroStock-api/internal/application/inventory"
	"github.com/cmoralesv/AgroStock-api/internal/application/usecase"
	"github.com/cmoralesv/AgroStock-api/internal/infrastructure/events"
	"github.com/cmoralesv/AgroStock-api/internal/infrastructure/metrics"
	"github.com/cmoralesv/AgroStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/cmoralesv/AgroStock-api/internal/interfaces/http"
	"github.com/cmoralesv/AgroStock-api/pkg/config"
	"github.com/cmoralesv/AgroStock-api/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Publicador de eventos de cambio: Redis si está habilitado, si no descarta.
	var publisher inventory.EventPublisher = inventory.NopPublisher{}
	if cfg.Redis.Enabled {
		redisPub, err := events.NewRedisPublisher(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisPub.Close()
		publisher = redisPub
	}

	recorder := metrics.NewRecorder()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, warehouseRepo, publisher, recorder)
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, warehouseRepo, supplierRepo, categoryRepo, movementUC, publisher)
	reservationUC := inventory.NewReservationUseCase(txRunner, reservationRepo, publisher, recorder)
	assetUC := inventory.NewDepreciationUseCase(txRunner, publisher)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		MovementUC:    movementUC,
		ReservationUC: reservationUC,
		AssetUC:       assetUC,
		WarehouseUC:   warehouseUC,
		SupplierUC:    supplierUC,
		CategoryUC:    categoryUC,
	})

	// Servidor de observabilidad (/health + /metrics Prometheus) en puerto aparte.
	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.Metrics.Port))
		go func() {
			if err := metricsSrv.Start(); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
