package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wacdo/internal/database"
	"wacdo/internal/model"
	"wacdo/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the
// application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog inserts a small product and menu catalog and returns the
// created entities.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) ([]model.Product, []model.Menu) {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()
	productRepo := repository.NewProductRepository(pool, logger)
	menuRepo := repository.NewMenuRepository(pool, logger)

	products := []model.Product{
		{Name: "Big Wac", PriceHT: 5.50, Available: true, Type: model.ProductTypeBurger, Options: []string{}},
		{Name: "Frites", PriceHT: 2.50, Available: true, Type: model.ProductTypeAccompagnement, Options: []string{"petite", "grande"}},
		{Name: "Coca-Cola", PriceHT: 2.00, Available: true, Type: model.ProductTypeBoisson, Options: []string{}},
		{Name: "Sundae", PriceHT: 2.50, Available: false, Type: model.ProductTypeDessert, Options: []string{}},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			t.Fatalf("failed to seed product %s: %v", products[i].Name, err)
		}
	}

	menus := []model.Menu{
		{Name: "Menu Best Of", PriceHT: 8.50, Available: true, Type: model.MenuTypeBestOf},
	}
	for i := range menus {
		composition := []int64{products[0].ID, products[1].ID, products[2].ID}
		if err := menuRepo.Create(ctx, &menus[i], composition); err != nil {
			t.Fatalf("failed to seed menu %s: %v", menus[i].Name, err)
		}
	}

	return products, menus
}

// SeedUser inserts a staff account with the given role and password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, passwordHash string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{Name: "Test Staff", Email: email, Password: passwordHash, Role: role}
	if err := repository.NewUserRepository(pool, zerolog.Nop()).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

// CleanupDB cleans all data from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_menu_options", "order_menus", "order_products", "orders", "menu_products", "menus", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
