package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"cementops/internal/adapters/out/postgres/deliveryrepo"
	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRepository using PostgreSQL containers.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{}, &deliveryrepo.DeliveryOrderDTO{}, &deliveryrepo.DeliveryHistoryDTO{},
	))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries, delivery_orders, delivery_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// makeDelivery creates a valid mission carrying the given orders.
func (suite *DeliveryRepositoryIntegrationTestSuite) makeDelivery(orderIDs []kernel.UUID, daysAhead int) *delivery.Delivery {
	now := time.Now().UTC()
	schedule, err := delivery.NewSchedule(now.AddDate(0, 0, daysAhead), "08:00")
	suite.Require().NoError(err)

	mission, err := delivery.NewDelivery(kernel.NewUUID(), orderIDs, nil, schedule,
		"Chantier Hay Riad", "gate B", "dispatcher", now)
	suite.Require().NoError(err)

	return mission
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()
	orderIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	mission := suite.makeDelivery(orderIDs, 7)

	suite.Require().NoError(suite.repository.Add(ctx, mission))

	retrieved, err := suite.repository.Get(ctx, mission.ID())
	suite.Require().NoError(err)

	suite.Equal(mission.ID(), retrieved.ID())
	suite.Equal(orderIDs, retrieved.OrderIDs(), "Order positions must survive the round trip")
	suite.Nil(retrieved.TruckID())
	suite.Equal("Chantier Hay Riad", retrieved.Destination())
	suite.Equal("gate B", retrieved.Notes())
	suite.Equal(delivery.Pending, retrieved.Status())
	suite.Require().Len(retrieved.History(), 1)
	suite.Equal("dispatcher", retrieved.History()[0].Actor())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_ReplacesOrderLinks() {
	ctx := context.Background()
	original := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	mission := suite.makeDelivery(original, 7)
	suite.Require().NoError(suite.repository.Add(ctx, mission))

	replacement := []kernel.UUID{kernel.NewUUID()}
	suite.Require().NoError(mission.SetOrders(replacement))
	suite.Require().NoError(suite.repository.Update(ctx, mission))

	retrieved, err := suite.repository.Get(ctx, mission.ID())
	suite.Require().NoError(err)
	suite.Equal(replacement, retrieved.OrderIDs())

	var linkCount int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryOrderDTO{}).Count(&linkCount).Error)
	suite.Equal(int64(1), linkCount, "Old links must be removed")
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewHistory() {
	ctx := context.Background()
	mission := suite.makeDelivery([]kernel.UUID{kernel.NewUUID()}, 7)
	suite.Require().NoError(suite.repository.Add(ctx, mission))

	truckID := kernel.NewUUID()
	suite.Require().NoError(mission.AssignTruck(truckID))
	now := time.Now().UTC()
	suite.Require().NoError(mission.ChangeStatus(delivery.Scheduled, "dispatcher", "", now))
	suite.Require().NoError(suite.repository.Update(ctx, mission))

	// A second update without new transitions must not duplicate rows
	suite.Require().NoError(suite.repository.Update(ctx, mission))

	var historyCount int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryHistoryDTO{}).
		Where("delivery_id = ?", mission.ID().Bytes()).Count(&historyCount).Error)
	suite.Equal(int64(2), historyCount)

	retrieved, err := suite.repository.Get(ctx, mission.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.History(), 2)
	suite.Equal(delivery.Pending, retrieved.History()[0].Status())
	suite.Equal(delivery.Scheduled, retrieved.History()[1].Status())
	suite.Require().NotNil(retrieved.TruckID())
	suite.True(retrieved.TruckID().IsEqual(truckID))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()
	mission := suite.makeDelivery([]kernel.UUID{kernel.NewUUID()}, 7)

	err := suite.repository.Update(ctx, mission)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestDelete_RemovesChildren() {
	ctx := context.Background()
	mission := suite.makeDelivery([]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, 7)
	suite.Require().NoError(suite.repository.Add(ctx, mission))

	suite.Require().NoError(suite.repository.Delete(ctx, mission.ID()))

	_, err := suite.repository.Get(ctx, mission.ID())
	suite.Require().Error(err)

	var linkCount, historyCount int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryOrderDTO{}).Count(&linkCount).Error)
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryHistoryDTO{}).Count(&historyCount).Error)
	suite.Zero(linkCount)
	suite.Zero(historyCount)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestDelete_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Delete(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAll_OrdersByScheduledDate() {
	ctx := context.Background()
	later := suite.makeDelivery([]kernel.UUID{kernel.NewUUID()}, 14)
	earlier := suite.makeDelivery([]kernel.UUID{kernel.NewUUID()}, 7)

	suite.Require().NoError(suite.repository.Add(ctx, later))
	suite.Require().NoError(suite.repository.Add(ctx, earlier))

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(all, 2)
	suite.Equal(earlier.ID(), all[0].ID())
	suite.Equal(later.ID(), all[1].ID())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveAssignments_SkipsCancelledMissions() {
	ctx := context.Background()

	heldOrder := kernel.NewUUID()
	cancelledOrder := kernel.NewUUID()
	freeOrder := kernel.NewUUID()

	active := suite.makeDelivery([]kernel.UUID{heldOrder}, 7)
	suite.Require().NoError(suite.repository.Add(ctx, active))

	cancelled := suite.makeDelivery([]kernel.UUID{cancelledOrder}, 7)
	suite.Require().NoError(cancelled.Cancel("dispatcher", "client pushed back", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	assignments, err := suite.repository.GetActiveAssignments(ctx,
		[]kernel.UUID{heldOrder, cancelledOrder, freeOrder})
	suite.Require().NoError(err)

	suite.Len(assignments, 1)
	ref, ok := assignments[heldOrder.String()]
	suite.Require().True(ok)
	suite.True(ref.DeliveryID.IsEqual(active.ID()))
	suite.Equal(delivery.Pending, ref.Status)
	suite.Equal(active.Schedule().DateString(), ref.Schedule.DateString())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveAssignments_EmptyInput() {
	ctx := context.Background()

	assignments, err := suite.repository.GetActiveAssignments(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(assignments)
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
