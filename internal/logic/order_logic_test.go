package logic

import (
	"sync"
	"testing"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderLogic(db *gorm.DB) (*OrderLogic, *CartLogic) {
	inventory := NewInventoryLogic(db)
	cart := NewCartLogic(db, inventory)
	return NewOrderLogic(db, inventory, cart), cart
}

func TestCreateOrderTotals(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book1 := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	book2 := seedBook(t, db, seller.ID, "Book Two", 500, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")

	order, err := orders.Create(buyer.ID, []CreateItem{
		{BookID: book1.ID, Quantity: 2},
		{BookID: book2.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2500), order.TotalAmountCents)

	var items []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 2)

	var sum int64
	for _, it := range items {
		assert.Equal(t, int64(it.Quantity)*it.UnitPriceCents, it.SubtotalCents)
		assert.Equal(t, seller.ID, it.SellerID)
		sum += it.SubtotalCents
	}
	assert.Equal(t, order.TotalAmountCents, sum)

	assert.Equal(t, 8, bookStock(t, db, book1.ID))
	assert.Equal(t, 9, bookStock(t, db, book2.ID))
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")

	_, err := orders.Create(buyer.ID, nil)
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	_, err = orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 0}})
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	assert.Equal(t, 10, bookStock(t, db, book.ID))
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book1 := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	book2 := seedBook(t, db, seller.ID, "Book Two", 500, 1)
	buyer := seedBuyer(t, db, "buyer@example.com")

	_, err := orders.Create(buyer.ID, []CreateItem{
		{BookID: book1.ID, Quantity: 2},
		{BookID: book2.ID, Quantity: 5},
	})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	// 第一条已扣减的库存必须随事务回滚还原
	assert.Equal(t, 10, bookStock(t, db, book1.ID))
	assert.Equal(t, 1, bookStock(t, db, book2.ID))

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderConcurrentSameBook(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 5)
	buyer := seedBuyer(t, db, "buyer@example.com")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 3}})
		}(i)
	}
	wg.Wait()

	okCount, conflictCount := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			okCount++
		case apperr.Is(err, apperr.CodeConflict):
			conflictCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflictCount)
	assert.Equal(t, 2, bookStock(t, db, book.ID))
}

func TestCreateOrderCapturesPriceAtOrderTime(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")

	order, err := orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	// 下单后改价不影响已生成订单
	require.NoError(t, db.Model(&model.Book{}).Where("id = ?", book.ID).Update("price_cents", 9999).Error)

	var item model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Take(&item).Error)
	assert.Equal(t, int64(1000), item.UnitPriceCents)

	var persisted model.Order
	require.NoError(t, db.Take(&persisted, order.ID).Error)
	assert.Equal(t, int64(1000), persisted.TotalAmountCents)
}

func TestCreateFromCart(t *testing.T) {
	db := newTestDB(t)
	orders, cart := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book1 := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	book2 := seedBook(t, db, seller.ID, "Book Two", 500, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")

	_, err := cart.AddItem(buyer.ID, book1.ID, 2)
	require.NoError(t, err)
	_, err = cart.AddItem(buyer.ID, book2.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), order.TotalAmountCents)

	// 下单成功后购物车被清空
	items, err := cart.ListCheckoutItems(nil, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateFromCartEmpty(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	buyer := seedBuyer(t, db, "buyer@example.com")

	_, err := orders.CreateFromCart(buyer.ID)
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))
}

func TestPayMy(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")
	other := seedBuyer(t, db, "other@example.com")

	order, err := orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	// 他人订单按不存在处理
	_, err = orders.PayMy(other.ID, order.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	paid, err := orders.PayMy(buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)

	// 重复支付幂等
	paidAgain, err := orders.PayMy(buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paidAgain.Status)

	// 非pending/paid状态不可支付
	_, _, err = orders.AdminSetStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	_, err = orders.PayMy(buyer.ID, order.ID)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestAdminSetStatus(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")

	order, err := orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	prev, updated, err := orders.AdminSetStatus(order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, prev)
	assert.Equal(t, model.OrderStatusCancelled, updated.Status)

	_, _, err = orders.AdminSetStatus(order.ID, model.OrderStatus("bogus"))
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	_, _, err = orders.AdminSetStatus(9999, model.OrderStatusPaid)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListMyAndAdminList(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 100)
	buyer := seedBuyer(t, db, "buyer@example.com")
	other := seedBuyer(t, db, "other@example.com")

	for i := 0; i < 3; i++ {
		_, err := orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 1}})
		require.NoError(t, err)
	}
	_, err := orders.Create(other.ID, []CreateItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	mine, total, err := orders.ListMy(buyer.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, mine, 2)
	// 最新在前
	assert.Greater(t, mine[0].ID, mine[1].ID)

	all, total, err := orders.AdminList(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
}

func TestDetailMy(t *testing.T) {
	db := newTestDB(t)
	orders, _ := newOrderLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 10)
	buyer := seedBuyer(t, db, "buyer@example.com")
	other := seedBuyer(t, db, "other@example.com")

	order, err := orders.Create(buyer.ID, []CreateItem{{BookID: book.ID, Quantity: 2}})
	require.NoError(t, err)

	got, items, err := orders.DetailMy(buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2000), items[0].SubtotalCents)

	_, _, err = orders.DetailMy(other.ID, order.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
