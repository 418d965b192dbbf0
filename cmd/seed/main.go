// seed crea el esquema de base de datos y lo puebla con datos de demostración:
// un usuario, su negocio, un cliente y dos servicios de catálogo.
//
// Uso: go run ./cmd/seed
// Credenciales demo: claire@example.fr / demo1234
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/infrastructure/postgres"
	"github.com/jhoicas/facturio/pkg/config"
	"github.com/jhoicas/facturio/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS businesses (
	id             UUID PRIMARY KEY,
	owner_id       UUID NOT NULL UNIQUE REFERENCES users(id),
	name           TEXT NOT NULL,
	siren          TEXT NOT NULL DEFAULT '',
	siret          TEXT NOT NULL DEFAULT '',
	tva_intra      TEXT NOT NULL DEFAULT '',
	vat_scheme     TEXT NOT NULL DEFAULT 'standard',
	invoice_prefix TEXT NOT NULL DEFAULT 'FAC',
	invoice_seq    BIGINT NOT NULL DEFAULT 0,
	address        TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	zip            TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clients (
	id          UUID PRIMARY KEY,
	business_id UUID NOT NULL REFERENCES businesses(id),
	first_name  TEXT NOT NULL,
	last_name   TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS services (
	id           UUID PRIMARY KEY,
	business_id  UUID NOT NULL REFERENCES businesses(id),
	name         TEXT NOT NULL,
	duration_min INT NOT NULL DEFAULT 0,
	price_ht     NUMERIC(12,2) NOT NULL,
	vat_rate     NUMERIC(5,2) NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
	id                UUID PRIMARY KEY,
	business_id       UUID NOT NULL REFERENCES businesses(id),
	client_id         UUID NOT NULL REFERENCES clients(id),
	number            TEXT NOT NULL,
	issue_date        DATE NOT NULL,
	due_date          DATE NOT NULL,
	status            TEXT NOT NULL,
	total_ht          NUMERIC(12,2) NOT NULL,
	total_vat         NUMERIC(12,2) NOT NULL,
	total_ttc         NUMERIC(12,2) NOT NULL,
	notes             TEXT,
	document_location TEXT,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (business_id, number)
);

CREATE TABLE IF NOT EXISTS invoice_lines (
	id             UUID PRIMARY KEY,
	invoice_id     UUID NOT NULL REFERENCES invoices(id),
	label          TEXT NOT NULL,
	qty            BIGINT NOT NULL,
	unit_price_ht  NUMERIC(12,2) NOT NULL,
	vat_rate       NUMERIC(5,2) NOT NULL,
	line_total_ht  NUMERIC(12,2) NOT NULL,
	line_total_vat NUMERIC(12,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
	id         UUID PRIMARY KEY,
	invoice_id UUID NOT NULL REFERENCES invoices(id),
	amount     NUMERIC(12,2) NOT NULL,
	method     TEXT,
	paid_at    TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_invoices_business ON invoices (business_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines (invoice_id);
CREATE INDEX IF NOT EXISTS idx_payments_invoice ON payments (invoice_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema creado")

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)

	// Idempotente: si el usuario demo ya existe no se reinserta nada.
	existing, err := userRepo.FindByEmail("claire@example.fr")
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario demo")
	}
	if existing != nil {
		log.Info().Msg("datos demo ya presentes, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password demo")
	}
	now := time.Now().UTC()

	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        "claire@example.fr",
		PasswordHash: string(hash),
		Name:         "Claire Dupont",
		CreatedAt:    now,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatal().Err(err).Msg("insertar usuario demo")
	}

	business := &entity.Business{
		ID:            uuid.NewString(),
		OwnerID:       user.ID,
		Name:          "Claire Dupont Coaching",
		SIREN:         "123456789",
		SIRET:         "12345678900011",
		VATScheme:     entity.VATSchemeStandard,
		InvoicePrefix: "FAC",
		Address:       "12 rue des Lilas",
		City:          "Lyon",
		Zip:           "69003",
		CreatedAt:     now,
	}
	if err := businessRepo.Create(business); err != nil {
		log.Fatal().Err(err).Msg("insertar negocio demo")
	}

	client := &entity.Client{
		ID:         uuid.NewString(),
		BusinessID: business.ID,
		FirstName:  "Marc",
		LastName:   "Durand",
		Email:      "marc.durand@example.fr",
		Phone:      "+33 6 12 34 56 78",
		CreatedAt:  now,
	}
	if err := clientRepo.Create(client); err != nil {
		log.Fatal().Err(err).Msg("insertar cliente demo")
	}

	services := []*entity.Service{
		{
			ID:          uuid.NewString(),
			BusinessID:  business.ID,
			Name:        "Séance de coaching",
			DurationMin: 60,
			PriceHT:     decimal.RequireFromString("50.00"),
			VATRate:     decimal.NewFromInt(20),
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			BusinessID:  business.ID,
			Name:        "Bilan complet",
			DurationMin: 120,
			PriceHT:     decimal.RequireFromString("120.00"),
			VATRate:     decimal.NewFromInt(20),
			CreatedAt:   now,
		},
	}
	for _, s := range services {
		if err := serviceRepo.Create(s); err != nil {
			log.Fatal().Err(err).Msg("insertar servicio demo")
		}
	}

	log.Info().
		Str("user", user.Email).
		Str("business", business.Name).
		Msg("datos demo insertados")
}
