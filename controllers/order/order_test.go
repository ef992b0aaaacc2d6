package orderControllers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Item{},
		&models.Order{},
		&models.OrderLine{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, firstName string) models.Customer {
	t.Helper()
	customer := models.Customer{
		CustomerUID: uuid.NewString(),
		FirstName:   firstName,
		ContactNum:  uuid.NewString(),
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedItem(t *testing.T, db *gorm.DB, name string, price float64) models.Item {
	t.Helper()
	item := models.Item{
		ItemUID:   uuid.NewString(),
		Name:      name,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func orderReq(date time.Time, customerUID string, lines ...LineRequest) OrderRequest {
	return OrderRequest{
		Date:         date,
		AmountDue:    100,
		PaymentMode:  "Cash",
		DeliveryMode: "Pickup",
		Note:         "leave at gate",
		CustomerUID:  customerUID,
		Lines:        lines,
	}
}

func TestCreateOrder(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	order, err := CreateOrder(db, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 2, Multiplier: 1},
	))
	require.NoError(t, err)

	fetched, err := GetOrder(db, order.OrderUID)
	require.NoError(t, err)
	assert.Equal(t, customer.CustomerUID, fetched.CustomerUID)
	assert.Equal(t, models.PaymentCash, fetched.PaymentMode)
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, item.ItemUID, fetched.Lines[0].ItemUID)
	assert.Equal(t, 2, fetched.Lines[0].Quantity)
}

func TestCreateOrder_InvalidEnums(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	req := orderReq(time.Now().UTC(), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1})
	req.PaymentMode = "Check"
	_, err := CreateOrder(db, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	req = orderReq(time.Now().UTC(), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1})
	req.DeliveryMode = "Courier"
	_, err = CreateOrder(db, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateOrder_UnknownReferences(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	_, err := CreateOrder(db, orderReq(time.Now().UTC(), "no-such-customer",
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	assert.True(t, apperrors.IsKind(err, apperrors.KindForeignKey))

	_, err = CreateOrder(db, orderReq(time.Now().UTC(), customer.CustomerUID,
		LineRequest{ItemUID: "no-such-item", Quantity: 1}))
	assert.True(t, apperrors.IsKind(err, apperrors.KindForeignKey))

	// failed create leaves nothing behind
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrder_DuplicateLineItem(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	_, err := CreateOrder(db, orderReq(time.Now().UTC(), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1},
		LineRequest{ItemUID: item.ItemUID, Quantity: 3},
	))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestListOrdersForDay_WindowBounds(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	inWindow := []time.Time{
		day,                          // inclusive lower bound
		day.Add(23*time.Hour + 30*time.Minute), // 23:30 same day
	}
	outOfWindow := []time.Time{
		day.Add(-time.Second),   // previous day
		day.Add(24 * time.Hour), // exclusive upper bound
	}

	var wantUIDs []string
	for _, ts := range inWindow {
		order, err := CreateOrder(db, orderReq(ts, customer.CustomerUID,
			LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
		require.NoError(t, err)
		wantUIDs = append(wantUIDs, order.OrderUID)
	}
	for _, ts := range outOfWindow {
		_, err := CreateOrder(db, orderReq(ts, customer.CustomerUID,
			LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
		require.NoError(t, err)
	}

	orders, err := ListOrdersForDay(db, day)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	gotUIDs := []string{orders[0].OrderUID, orders[1].OrderUID}
	assert.ElementsMatch(t, wantUIDs, gotUIDs)

	// the 23:30 order belongs to the 15th only
	prev, err := ListOrdersForDay(db, day.Add(-24*time.Hour))
	require.NoError(t, err)
	for _, order := range prev {
		assert.NotContains(t, wantUIDs, order.OrderUID)
	}
	next, err := ListOrdersForDay(db, day.Add(24*time.Hour))
	require.NoError(t, err)
	for _, order := range next {
		assert.NotContains(t, wantUIDs, order.OrderUID)
	}
}

func TestListOrdersForDay_SortedByDateThenCustomer(t *testing.T) {
	db := newTestDB(t)
	item := seedItem(t, db, "Siopao", 25)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	customerA := seedCustomer(t, db, "Ana")
	customerB := seedCustomer(t, db, "Ben")

	// two orders at the same instant, one later
	later, err := CreateOrder(db, orderReq(day.Add(15*time.Hour), customerA.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)
	_, err = CreateOrder(db, orderReq(day.Add(9*time.Hour), customerB.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)
	_, err = CreateOrder(db, orderReq(day.Add(9*time.Hour), customerA.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)

	orders, err := ListOrdersForDay(db, day)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.True(t, !orders[0].Date.After(orders[1].Date))
	assert.True(t, !orders[1].Date.After(orders[2].Date))
	// tie on date broken by customer uid ascending
	assert.LessOrEqual(t, orders[0].CustomerUID, orders[1].CustomerUID)
	assert.Equal(t, later.OrderUID, orders[2].OrderUID)
}

func TestListOrdersForDay_ExcludesDeleted(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	order, err := CreateOrder(db, orderReq(day.Add(time.Hour), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)
	require.NoError(t, DeleteOrder(db, order.OrderUID))

	orders, err := ListOrdersForDay(db, day)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestEditOrder_ReplacesLineSet(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	itemA := seedItem(t, db, "Siopao", 25)
	itemB := seedItem(t, db, "Siomai", 40)
	itemC := seedItem(t, db, "Gulaman", 15)

	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	order, err := CreateOrder(db, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: itemA.ItemUID, Quantity: 2, Multiplier: 1}))
	require.NoError(t, err)

	edited, err := EditOrder(db, order.OrderUID, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: itemB.ItemUID, Quantity: 1, Multiplier: 3},
		LineRequest{ItemUID: itemC.ItemUID, Quantity: 5, Multiplier: 1},
	))
	require.NoError(t, err)
	require.Len(t, edited.Lines, 2)

	got := map[string][2]int{}
	for _, line := range edited.Lines {
		got[line.ItemUID] = [2]int{line.Quantity, line.Multiplier}
	}
	assert.Equal(t, [2]int{1, 3}, got[itemB.ItemUID])
	assert.Equal(t, [2]int{5, 1}, got[itemC.ItemUID])
	assert.NotContains(t, got, itemA.ItemUID)

	// no leftover rows in the table either
	var count int64
	require.NoError(t, db.Model(&models.OrderLine{}).
		Where("order_uid = ?", order.OrderUID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestEditOrder_SameFieldsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	req := orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 2, Multiplier: 1})

	order, err := CreateOrder(db, req)
	require.NoError(t, err)
	edited, err := EditOrder(db, order.OrderUID, req)
	require.NoError(t, err)

	require.Len(t, edited.Lines, 1)
	assert.Equal(t, item.ItemUID, edited.Lines[0].ItemUID)
	assert.Equal(t, 2, edited.Lines[0].Quantity)
	assert.Equal(t, 1, edited.Lines[0].Multiplier)
}

func TestEditOrder_RollbackOnBadReference(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	order, err := CreateOrder(db, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 2, Multiplier: 1}))
	require.NoError(t, err)

	_, err = EditOrder(db, order.OrderUID, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: "no-such-item", Quantity: 1}))
	require.True(t, apperrors.IsKind(err, apperrors.KindForeignKey))

	// original line set untouched
	fetched, err := GetOrder(db, order.OrderUID)
	require.NoError(t, err)
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, item.ItemUID, fetched.Lines[0].ItemUID)
}

func TestEditOrder_NotFound(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	_, err := EditOrder(db, "no-such-order", orderReq(time.Now().UTC(), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDeleteOrder_SecondDeleteReportsNotFound(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)
	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	order, err := CreateOrder(db, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 2}))
	require.NoError(t, err)
	other, err := CreateOrder(db, orderReq(date, customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 7}))
	require.NoError(t, err)

	require.NoError(t, DeleteOrder(db, order.OrderUID))
	err = DeleteOrder(db, order.OrderUID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// other orders' lines are untouched
	fetched, err := GetOrder(db, other.OrderUID)
	require.NoError(t, err)
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, 7, fetched.Lines[0].Quantity)
}

func TestTogglePaid_BlindInvert(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	item := seedItem(t, db, "Siopao", 25)

	order, err := CreateOrder(db, orderReq(time.Now().UTC(), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)

	// happy path: current=false lands paid=true
	toggled, err := TogglePaid(db, order.OrderUID, false)
	require.NoError(t, err)
	assert.True(t, toggled.Paid)

	// the server negates whatever the client claims, it does not read first:
	// a stale current=false sets paid back to true even though it already is
	toggled, err = TogglePaid(db, order.OrderUID, false)
	require.NoError(t, err)
	assert.True(t, toggled.Paid)

	toggled, err = ToggleCollected(db, order.OrderUID, false)
	require.NoError(t, err)
	assert.True(t, toggled.Collected)
	assert.True(t, toggled.Paid)
}

func TestTogglePaid_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := TogglePaid(db, "no-such-order", false)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListOrdersForCustomer_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ana")
	otherCustomer := seedCustomer(t, db, "Ben")
	item := seedItem(t, db, "Siopao", 25)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	oldOrder, err := CreateOrder(db, orderReq(day, customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)
	newOrder, err := CreateOrder(db, orderReq(day.AddDate(0, 0, 3), customer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)
	_, err = CreateOrder(db, orderReq(day, otherCustomer.CustomerUID,
		LineRequest{ItemUID: item.ItemUID, Quantity: 1}))
	require.NoError(t, err)

	orders, err := ListOrdersForCustomer(db, customer.CustomerUID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newOrder.OrderUID, orders[0].OrderUID)
	assert.Equal(t, oldOrder.OrderUID, orders[1].OrderUID)
}
