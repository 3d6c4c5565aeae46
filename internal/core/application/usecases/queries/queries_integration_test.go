package queries_test

import (
	"context"
	"testing"
	"time"

	"cementops/internal/adapters/out/postgres/deliveryrepo"
	"cementops/internal/adapters/out/postgres/orderrepo"
	"cementops/internal/adapters/out/postgres/truckrepo"
	"cementops/internal/core/application/usecases/queries"
	"cementops/internal/core/domain/model/delivery"
	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/core/domain/model/order"
	"cementops/internal/core/domain/services"
	"cementops/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersTestSuite exercises the read-side handlers against a real
// PostgreSQL schema seeded row by row.
type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	scheduleHandler queries.GenerateScheduleQueryHandler
	boardHandler    queries.GetDeliveryBoardQueryHandler
	validateHandler queries.ValidateAssignmentQueryHandler
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.ClientDTO{}, &orderrepo.ProductDTO{}, &orderrepo.OrderDTO{},
		&truckrepo.TruckDTO{},
		&deliveryrepo.DeliveryDTO{}, &deliveryrepo.DeliveryOrderDTO{}, &deliveryrepo.DeliveryHistoryDTO{},
	)
	suite.Require().NoError(err)

	suite.scheduleHandler = queries.NewGenerateScheduleQueryHandler(db)
	suite.boardHandler = queries.NewGetDeliveryBoardQueryHandler(db)
	suite.validateHandler = queries.NewValidateAssignmentQueryHandler(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, clients, products, trucks, deliveries, delivery_orders, delivery_history").Error
	suite.Require().NoError(err)
}

// seedOrder inserts client, product and order rows and returns the order ID.
func (suite *QueryHandlersTestSuite) seedOrder(
	clientName, productName, quantity string, requestedDate time.Time, requestedTime string, status order.Status,
) kernel.UUID {
	clientID := kernel.NewUUID()
	productID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&orderrepo.ClientDTO{ID: clientID.Bytes(), Name: clientName}).Error)
	suite.Require().NoError(suite.db.Create(&orderrepo.ProductDTO{ID: productID.Bytes(), Name: productName}).Error)

	qty, err := decimal.NewFromString(quantity)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID:            orderID.Bytes(),
		ClientID:      clientID.Bytes(),
		ProductID:     productID.Bytes(),
		Quantity:      qty,
		RequestedDate: requestedDate,
		RequestedTime: requestedTime,
		Status:        status.String(),
	}).Error)

	return orderID
}

// seedTruck inserts a truck row and returns its ID.
func (suite *QueryHandlersTestSuite) seedTruck(plate, driver, capacity string) kernel.UUID {
	truckID := kernel.NewUUID()

	capacityValue, err := decimal.NewFromString(capacity)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Create(&truckrepo.TruckDTO{
		ID:          truckID.Bytes(),
		PlateNumber: plate,
		DriverName:  driver,
		Capacity:    capacityValue,
	}).Error)

	return truckID
}

// seedDelivery inserts a delivery row with its links, optionally bound to a truck.
func (suite *QueryHandlersTestSuite) seedDelivery(
	orderIDs []kernel.UUID, truckID *kernel.UUID, scheduledDate time.Time, scheduledTime string,
	destination string, status delivery.Status,
) kernel.UUID {
	deliveryID := kernel.NewUUID()

	dto := deliveryrepo.DeliveryDTO{
		ID:            deliveryID.Bytes(),
		ScheduledDate: scheduledDate,
		ScheduledTime: scheduledTime,
		Destination:   destination,
		Status:        status.String(),
	}
	if truckID != nil {
		raw := truckID.Bytes()
		dto.TruckID = &raw
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	for i, orderID := range orderIDs {
		suite.Require().NoError(suite.db.Create(&deliveryrepo.DeliveryOrderDTO{
			DeliveryID: deliveryID.Bytes(),
			OrderID:    orderID.Bytes(),
			Position:   i,
		}).Error)
	}

	return deliveryID
}

func (suite *QueryHandlersTestSuite) mustTonnage(s string) kernel.Tonnage {
	t, err := kernel.ParseTonnage(s)
	suite.Require().NoError(err)
	return t
}

func (suite *QueryHandlersTestSuite) TestGenerateSchedule_PacksBacklogIntoFleet() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	first := suite.seedOrder("Lafarge Sud", "CPJ 45", "10", requested, "08:00", order.Pending)
	second := suite.seedOrder("Atlas BTP", "CPJ 35", "8", requested, "10:00", order.Validated)
	suite.seedOrder("Sonasid", "CPJ 45", "15", requested, "", order.Pending)
	suite.seedTruck("12345-A-6", "Hassan", "20")

	query, err := queries.NewGenerateScheduleQuery(suite.mustTonnage("50"))
	suite.Require().NoError(err)

	result, err := suite.scheduleHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result.Trucks, 1)
	load := result.Trucks[0]
	suite.Equal("12345-A-6", load.PlateNumber)
	suite.Equal("Hassan", load.DriverName)
	suite.True(load.Load.IsEqual(suite.mustTonnage("18")))

	suite.Require().Len(load.Orders, 2)
	suite.Equal(first, load.Orders[0].OrderID)
	suite.Equal(second, load.Orders[1].OrderID)
	suite.Equal("Lafarge Sud", load.Orders[0].ClientName)
	suite.Equal("2026-09-10", load.Orders[0].RequestedDate)

	suite.Equal(3, result.Stats.TotalPendingOrders)
	suite.Equal(2, result.Stats.ScheduledOrders)
	suite.Equal(1, result.Stats.TrucksUtilized)
}

func (suite *QueryHandlersTestSuite) TestGenerateSchedule_SkipsOrdersHeldByActiveMissions() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	held := suite.seedOrder("Lafarge Sud", "CPJ 45", "10", requested, "", order.Pending)
	free := suite.seedOrder("Atlas BTP", "CPJ 35", "5", requested, "", order.Pending)
	released := suite.seedOrder("Sonasid", "CPJ 45", "7", requested, "", order.Pending)
	suite.seedTruck("12345-A-6", "Hassan", "30")

	scheduled := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	suite.seedDelivery([]kernel.UUID{held}, nil, scheduled, "", "Chantier Hay Riad", delivery.Scheduled)
	suite.seedDelivery([]kernel.UUID{released}, nil, scheduled, "", "Chantier Agdal", delivery.Cancelled)

	query, err := queries.NewGenerateScheduleQuery(suite.mustTonnage("100"))
	suite.Require().NoError(err)

	result, err := suite.scheduleHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result.Trucks, 1)
	scheduledIDs := make(map[string]bool)
	for _, slot := range result.Trucks[0].Orders {
		scheduledIDs[slot.OrderID.String()] = true
	}

	suite.False(scheduledIDs[held.String()], "Order held by an active mission must stay out of the proposal")
	suite.True(scheduledIDs[free.String()])
	suite.True(scheduledIDs[released.String()], "Cancelled missions release their orders")
}

func (suite *QueryHandlersTestSuite) TestGenerateSchedule_EmptyBacklog() {
	suite.seedTruck("12345-A-6", "Hassan", "20")

	query, err := queries.NewGenerateScheduleQuery(suite.mustTonnage("50"))
	suite.Require().NoError(err)

	result, err := suite.scheduleHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result.Trucks, 1)
	suite.Empty(result.Trucks[0].Orders)
	suite.Zero(result.Stats.TotalPendingOrders)
	suite.Zero(result.Stats.ScheduledOrders)
}

func (suite *QueryHandlersTestSuite) TestDeliveryBoard_MergesOrdersPerMission() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	first := suite.seedOrder("Lafarge Sud", "CPJ 45", "5", requested, "08:00", order.Validated)
	second := suite.seedOrder("Atlas BTP", "CPJ 45", "3", requested, "", order.Validated)

	truckID := suite.seedTruck("12345-A-6", "Hassan", "20")
	scheduled := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	deliveryID := suite.seedDelivery([]kernel.UUID{first, second}, &truckID, scheduled, "09:30",
		"Chantier Hay Riad", delivery.Scheduled)

	query, err := queries.NewGetDeliveryBoardQuery(services.SortByOrder)
	suite.Require().NoError(err)

	rows, err := suite.boardHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(rows, 1)
	row := rows[0]
	suite.Equal(deliveryID, row.DeliveryID)
	suite.Equal(delivery.Scheduled.String(), row.Status)
	suite.Equal("12345-A-6", row.TruckLabel)
	suite.Equal("Chantier Hay Riad", row.Destination)
	suite.Equal("Lafarge Sud 5T - Atlas BTP 3T", row.Clients)
	suite.Equal([]string{"CPJ 45"}, row.Products)
	suite.True(row.TotalQuantity.IsEqual(suite.mustTonnage("8")))
	suite.Equal("2026-09-15", row.Date)
	suite.Equal("09:30", row.Time)
}

func (suite *QueryHandlersTestSuite) TestDeliveryBoard_SortsByTime() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	earlyOrder := suite.seedOrder("Lafarge Sud", "CPJ 45", "5", requested, "", order.Validated)
	lateOrder := suite.seedOrder("Atlas BTP", "CPJ 35", "3", requested, "", order.Validated)

	lateID := suite.seedDelivery([]kernel.UUID{lateOrder}, nil,
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), "", "Chantier Agdal", delivery.Pending)
	earlyID := suite.seedDelivery([]kernel.UUID{earlyOrder}, nil,
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), "07:00", "Chantier Hay Riad", delivery.Pending)

	query, err := queries.NewGetDeliveryBoardQuery(services.SortByTime)
	suite.Require().NoError(err)

	rows, err := suite.boardHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(rows, 2)
	suite.Equal(earlyID, rows[0].DeliveryID)
	suite.Equal(lateID, rows[1].DeliveryID)
}

func (suite *QueryHandlersTestSuite) TestDeliveryBoard_MissionWithoutOrders() {
	deliveryID := suite.seedDelivery(nil, nil,
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), "", "Chantier Agdal", delivery.Pending)

	query, err := queries.NewGetDeliveryBoardQuery(services.SortByOrder)
	suite.Require().NoError(err)

	rows, err := suite.boardHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(rows, 1)
	suite.Equal(deliveryID, rows[0].DeliveryID)
	suite.Empty(rows[0].Clients)
	suite.True(rows[0].TotalQuantity.IsZero())
}

func (suite *QueryHandlersTestSuite) TestValidateAssignment_WithinCapacity() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	first := suite.seedOrder("Lafarge Sud", "CPJ 45", "10", requested, "", order.Pending)
	second := suite.seedOrder("Atlas BTP", "CPJ 35", "8", requested, "", order.Pending)
	truckID := suite.seedTruck("12345-A-6", "Hassan", "20")

	query, err := queries.NewValidateAssignmentQuery([]kernel.UUID{first, second}, &truckID, nil)
	suite.Require().NoError(err)

	result, err := suite.validateHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(result.Used.IsEqual(suite.mustTonnage("18")))
}

func (suite *QueryHandlersTestSuite) TestValidateAssignment_CapacityExceeded() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	first := suite.seedOrder("Lafarge Sud", "CPJ 45", "15", requested, "", order.Pending)
	second := suite.seedOrder("Atlas BTP", "CPJ 35", "10", requested, "", order.Pending)
	truckID := suite.seedTruck("12345-A-6", "Hassan", "20")

	query, err := queries.NewValidateAssignmentQuery([]kernel.UUID{first, second}, &truckID, nil)
	suite.Require().NoError(err)

	_, err = suite.validateHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, services.ErrCapacityExceeded)

	var capacityErr *services.CapacityExceededError
	suite.Require().ErrorAs(err, &capacityErr)
	suite.True(capacityErr.Used.IsEqual(suite.mustTonnage("25")))
	suite.True(capacityErr.Capacity.IsEqual(suite.mustTonnage("20")))
}

func (suite *QueryHandlersTestSuite) TestValidateAssignment_ConflictReportsHolder() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	held := suite.seedOrder("Lafarge Sud", "CPJ 45", "10", requested, "", order.Pending)

	holderID := suite.seedDelivery([]kernel.UUID{held}, nil,
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), "", "Chantier Hay Riad", delivery.Scheduled)

	query, err := queries.NewValidateAssignmentQuery([]kernel.UUID{held}, nil, nil)
	suite.Require().NoError(err)

	_, err = suite.validateHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, services.ErrAlreadyAssigned)

	var assignedErr *services.AlreadyAssignedError
	suite.Require().ErrorAs(err, &assignedErr)
	suite.Require().Len(assignedErr.Conflicts, 1)
	suite.True(assignedErr.Conflicts[0].DeliveryID.IsEqual(holderID))
	suite.Equal("Lafarge Sud", assignedErr.Conflicts[0].ClientName)
}

func (suite *QueryHandlersTestSuite) TestValidateAssignment_SelfExclusionPasses() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	held := suite.seedOrder("Lafarge Sud", "CPJ 45", "10", requested, "", order.Pending)

	holderID := suite.seedDelivery([]kernel.UUID{held}, nil,
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), "", "Chantier Hay Riad", delivery.Scheduled)

	query, err := queries.NewValidateAssignmentQuery([]kernel.UUID{held}, nil, &holderID)
	suite.Require().NoError(err)

	result, err := suite.validateHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(result.Used.IsEqual(suite.mustTonnage("10")))
}

func (suite *QueryHandlersTestSuite) TestValidateAssignment_CancelledMissionReleasesOrders() {
	requested := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	released := suite.seedOrder("Lafarge Sud", "CPJ 45", "10", requested, "", order.Pending)

	suite.seedDelivery([]kernel.UUID{released}, nil,
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), "", "Chantier Hay Riad", delivery.Cancelled)

	query, err := queries.NewValidateAssignmentQuery([]kernel.UUID{released}, nil, nil)
	suite.Require().NoError(err)

	result, err := suite.validateHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(result.Used.IsEqual(suite.mustTonnage("10")))
}

func (suite *QueryHandlersTestSuite) TestValidateAssignment_UnknownOrder() {
	query, err := queries.NewValidateAssignmentQuery([]kernel.UUID{kernel.NewUUID()}, nil, nil)
	suite.Require().NoError(err)

	_, err = suite.validateHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
