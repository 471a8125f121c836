package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khangtran/folio/internal/domain/portfolio"
	"github.com/khangtran/folio/pkg/apperror"
	"github.com/khangtran/folio/pkg/logger"
)

type RegistryRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	registry    portfolio.Registry
}

func (s *RegistryRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.registry = NewPostgresRegistryRepo(s.dbPool, logger.NewNop())
}

func (s *RegistryRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRegistryRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RegistryRepoIntegrationTestSuite))
}

func (s *RegistryRepoIntegrationTestSuite) Test_Publish_And_Fetch() {
	ctx := context.Background()

	snapshot := portfolio.DefaultProfile()
	snapshot.FullName = "Integration Owner"

	id := s.registry.GenerateID()
	s.NoError(s.registry.Publish(ctx, id, snapshot))

	fetched, err := s.registry.Fetch(ctx, id)
	s.NoError(err)
	s.NotNil(fetched)
	s.Equal(snapshot, *fetched)
}

func (s *RegistryRepoIntegrationTestSuite) Test_Republish_Overwrites() {
	ctx := context.Background()
	id := s.registry.GenerateID()

	first := portfolio.DefaultProfile()
	first.FullName = "First Version"
	s.NoError(s.registry.Publish(ctx, id, first))

	second := portfolio.DefaultProfile()
	second.FullName = "Second Version"
	s.NoError(s.registry.Publish(ctx, id, second))

	fetched, err := s.registry.Fetch(ctx, id)
	s.NoError(err)
	s.Equal("Second Version", fetched.FullName)
}

func (s *RegistryRepoIntegrationTestSuite) Test_Fetch_UnknownID() {
	_, err := s.registry.Fetch(context.Background(), "nosuchid")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *RegistryRepoIntegrationTestSuite) Test_Fetch_CorruptedBlobDegradesToAbsent() {
	ctx := context.Background()
	id := s.registry.GenerateID()

	_, err := s.dbPool.Exec(ctx,
		`INSERT INTO portfolios (id, data) VALUES ($1, '"not a profile"'::jsonb)`, id)
	s.NoError(err)

	_, err = s.registry.Fetch(ctx, id)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *RegistryRepoIntegrationTestSuite) Test_ListPublished_OrderedByRecency() {
	ctx := context.Background()

	older := s.registry.GenerateID()
	newer := s.registry.GenerateID()
	s.NoError(s.registry.Publish(ctx, older, portfolio.DefaultProfile()))
	time.Sleep(50 * time.Millisecond)
	s.NoError(s.registry.Publish(ctx, newer, portfolio.DefaultProfile()))

	entries, err := s.registry.ListPublished(ctx, 100)
	s.NoError(err)
	s.GreaterOrEqual(len(entries), 2)

	var newerIdx, olderIdx int
	for i, e := range entries {
		switch e.ID {
		case newer:
			newerIdx = i
		case older:
			olderIdx = i
		}
	}
	s.Less(newerIdx, olderIdx, "newer publish listed first")
}
