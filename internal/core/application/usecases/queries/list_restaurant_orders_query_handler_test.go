package queries_test

import (
	"context"
	"testing"
	"time"

	"deliverus/internal/adapters/out/postgres/orderrepo"
	"deliverus/internal/adapters/out/postgres/restaurantrepo"
	"deliverus/internal/adapters/out/postgres/userrepo"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListRestaurantOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListRestaurantOrdersQueryHandler
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) SetupSuite() {
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
		&userrepo.UserDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderProductDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewListRestaurantOrdersQueryHandler(db)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_products, orders, products, restaurants, users CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) createCustomer(name, email string) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&userrepo.UserDTO{ID: id.Bytes(), Name: name, Email: email}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) createRestaurant(ownerID kernel.UUID) (*restaurant.Restaurant, restaurant.Product) {
	product, err := restaurant.NewProduct(kernel.NewUUID(), "Pizza Margherita", 8.50)
	suite.Require().NoError(err)

	rest, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Casa Felix",
		[]restaurant.Product{product})
	suite.Require().NoError(err)

	repo := restaurantrepo.NewGormRestaurantRepository(suite.db)
	err = repo.Add(context.Background(), rest)
	suite.Require().NoError(err)

	return rest, product
}

// placeOrder persists an order in the given status; stage timestamps are
// derived from createdAt so the stored row satisfies the consistency checks.
func (suite *ListRestaurantOrdersQueryHandlerTestSuite) placeOrder(
	restaurantID, customerID kernel.UUID,
	product restaurant.Product,
	status order.Status,
	createdAt time.Time,
) *order.Order {
	item, err := order.NewLineItem(product.ID(), 2, product.Price())
	suite.Require().NoError(err)

	var startedAt, sentAt, deliveredAt *time.Time
	stamp := func(offset time.Duration) *time.Time {
		ts := createdAt.Add(offset)
		return &ts
	}
	switch status {
	case order.Delivered:
		deliveredAt = stamp(3 * time.Minute)
		fallthrough
	case order.Sent:
		sentAt = stamp(2 * time.Minute)
		fallthrough
	case order.InProcess:
		startedAt = stamp(1 * time.Minute)
	default:
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), restaurantID, customerID,
		"23 Elm Street", 3.50, []order.LineItem{item},
		status, createdAt, createdAt.Add(3*time.Minute),
		startedAt, sentAt, deliveredAt,
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &noopAggregateTracker{})
	err = repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)

	return aggregate
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TestHandle_OwnedRestaurantWithoutOrders_ReturnsEmptySlice() {
	ownerID := suite.createCustomer("Olive Owner", "owner@example.com")
	rest, _ := suite.createRestaurant(ownerID)

	query, err := queries.NewListRestaurantOrdersQuery(rest.ID(), ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TestHandle_SortsByStatusThenCreationTime() {
	ownerID := suite.createCustomer("Olive Owner", "owner@example.com")
	customerID := suite.createCustomer("Carl Customer", "carl@example.com")
	rest, product := suite.createRestaurant(ownerID)

	base := time.Now().UTC().Truncate(time.Second).Add(-2 * time.Hour)

	// Inserted deliberately out of order.
	delivered := suite.placeOrder(rest.ID(), customerID, product, order.Delivered, base)
	latePending := suite.placeOrder(rest.ID(), customerID, product, order.Pending, base.Add(30*time.Minute))
	earlyPending := suite.placeOrder(rest.ID(), customerID, product, order.Pending, base.Add(10*time.Minute))
	sent := suite.placeOrder(rest.ID(), customerID, product, order.Sent, base.Add(5*time.Minute))

	query, err := queries.NewListRestaurantOrdersQuery(rest.ID(), ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 4)

	// Status ascending, then creation time ascending within each bucket.
	suite.True(result[0].ID.IsEqual(earlyPending.ID()))
	suite.True(result[1].ID.IsEqual(latePending.ID()))
	suite.True(result[2].ID.IsEqual(sent.ID()))
	suite.True(result[3].ID.IsEqual(delivered.ID()))

	suite.Equal(order.Pending, result[0].Status)
	suite.Equal(order.Sent, result[2].Status)
	suite.Equal(order.Delivered, result[3].Status)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TestHandle_AttachesCustomerAndLineItems() {
	ownerID := suite.createCustomer("Olive Owner", "owner@example.com")
	customerID := suite.createCustomer("Carl Customer", "carl@example.com")
	rest, product := suite.createRestaurant(ownerID)

	placed := suite.placeOrder(rest.ID(), customerID, product, order.Pending, time.Now().UTC().Truncate(time.Second))

	query, err := queries.NewListRestaurantOrdersQuery(rest.ID(), ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	listed := result[0]
	suite.True(listed.ID.IsEqual(placed.ID()))
	suite.True(listed.Customer.ID.IsEqual(customerID))
	suite.Equal("Carl Customer", listed.Customer.Name)
	suite.Equal("carl@example.com", listed.Customer.Email)
	suite.InDelta(placed.Price(), listed.Price, 0.001)

	suite.Require().Len(listed.Items, 1)
	suite.True(listed.Items[0].ProductID.IsEqual(product.ID()))
	suite.Equal("Pizza Margherita", listed.Items[0].ProductName)
	suite.Equal(2, listed.Items[0].Quantity)
	suite.InDelta(8.50, listed.Items[0].UnitPrice, 0.001)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TestHandle_ForeignRestaurant_ReturnsAccessDenied() {
	ownerID := suite.createCustomer("Olive Owner", "owner@example.com")
	strangerID := suite.createCustomer("Sally Stranger", "sally@example.com")
	rest, _ := suite.createRestaurant(ownerID)

	query, err := queries.NewListRestaurantOrdersQuery(rest.ID(), strangerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrRestaurantAccessDenied)
	suite.Nil(result)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TestHandle_MissingRestaurant_ReturnsAccessDenied() {
	userID := suite.createCustomer("Olive Owner", "owner@example.com")

	query, err := queries.NewListRestaurantOrdersQuery(kernel.NewUUID(), userID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrRestaurantAccessDenied)
	suite.Nil(result)
}

func (suite *ListRestaurantOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListRestaurantOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListRestaurantOrdersQuery constructor")
}

func TestListRestaurantOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListRestaurantOrdersQueryHandlerTestSuite))
}

// noopAggregateTracker satisfies the order repository's tracker dependency;
// query tests have no unit of work.
type noopAggregateTracker struct{}

func (t *noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}
