package persistence

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopfront/backend/internal/domain/billing"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

// setupTestDB opens an isolated in-memory sqlite database with the
// schema, including the partial unique index the pending-payment
// invariant relies on.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Shop{},
		&catalog.Product{},
		&ordering.Customer{},
		&ordering.Order{},
		&ordering.OrderItem{},
		&billing.Plan{},
		&billing.PaymentChannel{},
		&billing.SubscriptionPayment{},
		&billing.Subscription{},
	))
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_payment_per_user
		 ON subscription_payments(user_id) WHERE status = 'pending'`).Error)

	return db
}

func seedOwner(t *testing.T, db *gorm.DB) *identity.User {
	t.Helper()
	owner, err := identity.NewUser("Aminata Sow", fmt.Sprintf("+2217%08d", uuid.New().ID()%100000000), identity.RoleOwner)
	require.NoError(t, err)
	require.NoError(t, db.Create(owner).Error)
	return owner
}

func seedShop(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *catalog.Shop {
	t.Helper()
	shop, err := catalog.NewShop(ownerID, "Boutique Aminata", "boutique-"+uuid.NewString()[:8], valueobject.USD)
	require.NoError(t, err)
	require.NoError(t, db.Create(shop).Error)
	return shop
}

func seedProduct(t *testing.T, db *gorm.DB, shopID uuid.UUID, price string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(shopID, "Wax Print Dress", "Handmade", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedPlan(t *testing.T, db *gorm.DB) *billing.Plan {
	t.Helper()
	plan := &billing.Plan{
		BaseEntity:      shared.NewBaseEntity(),
		Key:             "pro",
		Name:            "Pro",
		Price:           decimal.RequireFromString("29.99"),
		Currency:        valueobject.USD,
		DiscountPercent: decimal.RequireFromString("10"),
		DurationMonths:  1,
		Active:          true,
		SortOrder:       1,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func buildOrder(t *testing.T, shopID uuid.UUID, product *catalog.Product, quantity int) (*ordering.Order, *ordering.Customer) {
	t.Helper()
	customer, err := ordering.NewCustomer("Fatou Diop", fmt.Sprintf("+2217%08d", uuid.New().ID()%100000000), "12 Rue Felix Faure", "Dakar")
	require.NoError(t, err)
	order, err := ordering.NewOrder(shopID, customer.ID, ordering.GenerateOrderNumber(), valueobject.USD, product.ID, product.Name, quantity, product.Price)
	require.NoError(t, err)
	return order, customer
}
