package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	caterrors "github.com/shopflow/storefront/internal/catalog/errors"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"

// PgStoreSuite is a test suite for the PostgreSQL CatalogStore implementation.
type PgStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       CatalogStore
	logger      *slog.Logger
	ctx         context.Context
}

// SetupSuite starts a PostgreSQL container, applies the catalog migrations
// and seeds two products with variants.
func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "catalog_db"
	dbUser := "user"
	dbPassword := "password"

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "../../../migrations")
	m, err := migrate.New("file://"+migrationsPath, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	require.NoError(s.T(), m.Up(), "Failed to apply migrations")

	s.store = NewPgStore(s.dbPool)
	s.seed()
}

func (s *PgStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		require.NoError(s.T(), s.pgContainer.Terminate(s.ctx), "Failed to terminate PostgreSQL container")
	}
}

func (s *PgStoreSuite) seed() {
	_, err := s.dbPool.Exec(s.ctx, `
		INSERT INTO products (id, title, description, category, price, original_price, images, rating, review_count, featured, on_sale, in_stock)
		VALUES
		  ('1', 'Wireless Headphones', 'noise cancelling', 'Electronics', 12999, 0, '{"img/h.jpg"}', 4.5, 128, TRUE,  FALSE, TRUE),
		  ('2', 'Cotton T-Shirt',      'organic cotton',   'Clothing',    2499,  3499, '{"img/t.jpg"}', 4.2, 64,  FALSE, TRUE,  TRUE)
	`)
	require.NoError(s.T(), err, "Failed to seed products")

	_, err = s.dbPool.Exec(s.ctx, `
		INSERT INTO product_variants (product_id, id, name, price_modifier, options)
		VALUES
		  ('1', 'black',  'Midnight Black', 0,    '{"Black"}'),
		  ('1', 'silver', 'Arctic Silver',  1000, '{"Silver"}')
	`)
	require.NoError(s.T(), err, "Failed to seed variants")
}

func (s *PgStoreSuite) TestFindAll() {
	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)

	// catalog order follows the position column
	assert.Equal(s.T(), "1", list[0].ID)
	assert.Equal(s.T(), "2", list[1].ID)

	// variants are attached in declaration order
	require.Len(s.T(), list[0].Variants, 2)
	assert.Equal(s.T(), "black", list[0].Variants[0].ID)
	assert.Equal(s.T(), int64(1000), list[0].Variants[1].PriceModifier)
	assert.Empty(s.T(), list[1].Variants)
}

func (s *PgStoreSuite) TestFindByID() {
	found, err := s.store.FindByID(s.ctx, "1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Wireless Headphones", found.Title)
	assert.Equal(s.T(), int64(12999), found.Price)

	_, err = s.store.FindByID(s.ctx, "404")
	assert.ErrorIs(s.T(), err, caterrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestFindByCategory() {
	list, err := s.store.FindByCategory(s.ctx, "electronics")
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "1", list[0].ID)
}

func (s *PgStoreSuite) TestSearch() {
	list, err := s.store.Search(s.ctx, "COTTON")
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "2", list[0].ID)

	list, err = s.store.Search(s.ctx, "bicycle")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)
}

func (s *PgStoreSuite) TestFeaturedAndOnSale() {
	featured, err := s.store.FindFeatured(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), featured, 1)
	assert.Equal(s.T(), "1", featured[0].ID)

	onSale, err := s.store.FindOnSale(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), onSale, 1)
	assert.Equal(s.T(), "2", onSale[0].ID)
}

func TestPgStoreSuite(t *testing.T) {
	if os.Getenv(skipIntegrationTests) != "" {
		t.Skipf("Skipping integration tests because %s is set", skipIntegrationTests)
	}
	suite.Run(t, new(PgStoreSuite))
}
