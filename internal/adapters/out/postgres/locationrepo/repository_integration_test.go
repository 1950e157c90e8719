package locationrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LocationRepositoryIntegrationTestSuite provides integration tests for
// LocationRepository using PostgreSQL containers, verifying the one-row-per-
// worker upsert semantics.
type LocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container          *postgres.PostgresContainer
	db                 *gorm.DB
	locationRepository *locationrepo.GormLocationRepository
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&locationrepo.LocationDTO{}))
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE worker_locations").Error)
	suite.locationRepository = locationrepo.NewGormLocationRepository(suite.db)
}

func (suite *LocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LocationRepositoryIntegrationTestSuite) TestUpsert_NewWorker_InsertsRow() {
	ctx := context.Background()
	workerID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(40.4168, -3.7038)
	suite.Require().NoError(err)
	recordedAt := time.Now().UTC().Truncate(time.Millisecond)

	suite.Require().NoError(suite.locationRepository.Upsert(ctx, workerID, point, recordedAt))

	sample, err := suite.locationRepository.GetLatest(ctx, workerID)
	suite.Require().NoError(err)
	suite.True(sample.WorkerID().IsEqual(workerID))
	suite.InDelta(40.4168, sample.Point().Lat(), 1e-9)
	suite.InDelta(-3.7038, sample.Point().Lng(), 1e-9)
	suite.WithinDuration(recordedAt, sample.RecordedAt(), time.Millisecond)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestUpsert_ExistingWorker_OverwritesSingleRow() {
	ctx := context.Background()
	workerID := kernel.NewUUID()
	first, err := kernel.NewGeoPoint(40.0, -3.0)
	suite.Require().NoError(err)
	second, err := kernel.NewGeoPoint(41.39, 2.17)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.locationRepository.Upsert(ctx, workerID, first, time.Now().UTC().Add(-time.Minute)))
	recordedAt := time.Now().UTC().Truncate(time.Millisecond)
	suite.Require().NoError(suite.locationRepository.Upsert(ctx, workerID, second, recordedAt))

	// Still a single row, holding the latest position
	var count int64
	suite.Require().NoError(suite.db.Model(&locationrepo.LocationDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	sample, err := suite.locationRepository.GetLatest(ctx, workerID)
	suite.Require().NoError(err)
	suite.InDelta(41.39, sample.Point().Lat(), 1e-9)
	suite.WithinDuration(recordedAt, sample.RecordedAt(), time.Millisecond)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestUpsert_DistinctWorkers_KeepSeparateRows() {
	ctx := context.Background()
	point, err := kernel.NewGeoPoint(48.85, 2.35)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.locationRepository.Upsert(ctx, kernel.NewUUID(), point, time.Now().UTC()))
	suite.Require().NoError(suite.locationRepository.Upsert(ctx, kernel.NewUUID(), point, time.Now().UTC()))

	var count int64
	suite.Require().NoError(suite.db.Model(&locationrepo.LocationDTO{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestGetLatest_MissingWorker_ReturnsObjectNotFound() {
	ctx := context.Background()

	_, err := suite.locationRepository.GetLatest(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LocationRepositoryIntegrationTestSuite))
}
