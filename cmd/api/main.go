package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/financas-casa/internal/application/auth"
	"github.com/jhoicas/financas-casa/internal/application/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	infrapdf "github.com/jhoicas/financas-casa/internal/infrastructure/pdf"
	"github.com/jhoicas/financas-casa/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/financas-casa/internal/interfaces/http"
	"github.com/jhoicas/financas-casa/internal/worker"
	"github.com/jhoicas/financas-casa/pkg/config"
	"github.com/jhoicas/financas-casa/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.Ledger.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del libro")
	}

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	limitRepo := postgres.NewLimitRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	replicator := ledger.NewReplicator(txRunner, log)
	recorderUC := ledger.NewRecorderUseCase(txRunner, replicator, log,
		ledger.WithLocation(loc),
		ledger.WithCreditAnchors(domledger.CreditAnchors{
			entity.PersonYuri:   cfg.Ledger.CreditAnchorYuri,
			entity.PersonMarcos: cfg.Ledger.CreditAnchorMarcos,
		}),
	)
	viewerUC := ledger.NewViewerUseCase(movementRepo, limitRepo, log)
	statementUC := ledger.NewStatementUseCase(viewerUC, infrapdf.NewMarotoStatementGenerator(cfg.App.Name))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Finanças da Casa API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:    cfg.App.Name,
		AuthUC:     authUC,
		RecorderUC: recorderUC,
		Replicator: replicator,
		ViewerUC:   viewerUC,
		Statement:  statementUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	if cfg.Ledger.RolloverInterval > 0 {
		go worker.NewRolloverWorker(replicator, cfg.Ledger.RolloverInterval, loc, log).Run(ctx)
	} else {
		log.Warn().Msg("rollover worker desactivado (LEDGER_ROLLOVER_INTERVAL=0)")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
