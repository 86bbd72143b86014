// Package main provides a CLI tool for seeding the database with
// initial data: an admin user and, optionally, demo catalogs plus an
// opening purchase so the demo products have stock on hand.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalogs/customer"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/catalogs/supplier"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/posting"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/register_repo"
	"stockbook/pkg/logger"
	"stockbook/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, adminID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stockbook.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, is_active)
		VALUES ($1, $2, $3, 'Administrator', true)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID) error {
	txManager := postgres.NewTxManager(pool)
	num := numerator.New(postgres.NewNumeratorQuerier(txManager))

	products := product.NewService(catalog_repo.NewProductRepo(txManager), txManager, num)
	suppliers := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), txManager, num)
	customers := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager, num)

	engine := posting.NewEngine(txManager, ledger.NewService(register_repo.NewStockRepo(txManager)))
	purchases := purchase.NewService(document_repo.NewPurchaseRepo(txManager), engine, num)

	acme := supplier.NewSupplier("", "Acme Wholesale Ltd")
	if err := suppliers.Create(ctx, acme); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}

	northwind := customer.NewCustomer("", "Northwind Retail")
	if err := customers.Create(ctx, northwind); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	demo := []struct {
		name  string
		sku   string
		price string
		qty   types.Quantity
	}{
		{"Steel bolt M8", "BOLT-M8", "0.35", 500},
		{"Oak plank 2m", "OAK-2M", "14.90", 40},
		{"Wood glue 750ml", "GLUE-750", "6.25", 60},
	}

	doc := purchase.NewPurchase(acme.ID, adminID)
	for _, item := range demo {
		sku := item.sku
		p := product.NewProduct("", item.name, types.MustMoney(item.price))
		p.SKU = &sku
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %s: %w", item.name, err)
		}
		doc.AddLine(p.ID, item.qty, p.UnitPrice)
	}

	committed, err := purchases.Commit(ctx, doc)
	if err != nil {
		return fmt.Errorf("commit opening purchase: %w", err)
	}

	log.Infow("demo data seeded",
		"supplier", acme.Name,
		"customer", northwind.Name,
		"products", len(demo),
		"opening_document", committed.Number,
		"opening_total", committed.Total.String(),
	)
	return nil
}
