// seed prepara la base del hogar: aplica las migraciones, crea los usuarios de Yuri y Marcos
// (SEED_PASSWORD) y, con SEED_SAMPLE_DATA=true, carga los datos de ejemplo de enero de 2024.
//
// Uso: go run ./cmd/seed
// Es idempotente: los movimientos se insertan solo si falta su (data, descricao, pessoa).
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/financas-casa/internal/application/auth"
	"github.com/jhoicas/financas-casa/internal/domain/entity"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/jhoicas/financas-casa/internal/infrastructure/postgres"
	"github.com/jhoicas/financas-casa/pkg/config"
	"github.com/jhoicas/financas-casa/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Seed.Password != "" {
		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{}, log)
		for _, p := range entity.Persons {
			if _, err := authUC.EnsureUser(ctx, string(p), cfg.Seed.Password); err != nil {
				log.Fatal().Err(err).Str("person", string(p)).Msg("crear usuario")
			}
		}
	} else {
		log.Warn().Msg("SEED_PASSWORD vacío: no se crean usuarios")
	}

	if !cfg.Seed.SampleData {
		log.Info().Msg("seed completo (sin datos de ejemplo)")
		return
	}

	inserted := 0
	err = postgres.NewTxRunner(pool).Run(ctx, func(movRepo repository.MovementRepository, limitRepo repository.LimitRepository) error {
		batch := uuid.NewString()
		for _, m := range sampleMovements() {
			m.BatchID = batch
			ok, err := movRepo.InsertIfAbsent(ctx, &m)
			if err != nil {
				return err
			}
			if ok {
				inserted++
			}
		}
		for _, l := range sampleLimits() {
			if err := limitRepo.Upsert(ctx, &l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("datos de ejemplo")
		os.Exit(1)
	}
	log.Info().Int("movements", inserted).Msg("seed completo")
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// sampleMovements: dos salarios, tres Contas recurrentes, una compra a crédito y el depósito inicial.
func sampleMovements() []entity.Movement {
	yuri, marcos := entity.PersonPtr(entity.PersonYuri), entity.PersonPtr(entity.PersonMarcos)
	debit := entity.StringPtr("Débito")
	recurring := entity.IntPtr(entity.RecurringForever)
	return []entity.Movement{
		{Date: day(14), Description: entity.SalaryDescription, Amount: decimal.NewFromInt(5000), Kind: entity.KindSalary, Person: yuri},
		{Date: day(26), Description: entity.SalaryDescription, Amount: decimal.NewFromInt(5000), Kind: entity.KindSalary, Person: marcos},
		{Date: day(5), Description: "Aluguel", Amount: decimal.NewFromInt(-1500), Kind: entity.KindBill, Person: yuri, PaymentMethod: debit, InstallmentCount: recurring},
		{Date: day(10), Description: "Internet", Amount: decimal.NewFromInt(-150), Kind: entity.KindBill, Person: marcos, PaymentMethod: debit, InstallmentCount: recurring},
		{
			Date: day(15), Description: "Compra Supermercado", Amount: decimal.NewFromInt(-500), Kind: entity.KindPurchase, Person: yuri,
			PaymentMethod: entity.StringPtr(entity.PaymentCredit), InstallmentIndex: entity.IntPtr(1), InstallmentCount: entity.IntPtr(1),
		},
		{Date: day(20), Description: "Academia", Amount: decimal.NewFromInt(-100), Kind: entity.KindBill, Person: marcos, PaymentMethod: debit, InstallmentCount: recurring},
		{Date: day(1), Description: "Depósito Inicial", Amount: decimal.NewFromInt(1000), Kind: entity.KindSavings},
	}
}

func sampleLimits() []entity.Limit {
	return []entity.Limit{
		{MonthStart: day(1), Person: entity.PersonYuri, Amount: decimal.NewFromInt(2000)},
		{MonthStart: day(1), Person: entity.PersonMarcos, Amount: decimal.NewFromInt(2000)},
	}
}
