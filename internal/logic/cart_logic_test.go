package logic

import (
	"testing"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartLogic(db *gorm.DB) *CartLogic {
	return NewCartLogic(db, NewInventoryLogic(db))
}

func TestCartAddItem(t *testing.T) {
	db := newTestDB(t)
	cart := newCartLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1500, 5)
	buyer := seedBuyer(t, db, "buyer@example.com")

	view, err := cart.AddItem(buyer.ID, book.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.TotalQuantity)
	assert.Equal(t, int64(3000), view.SubtotalCents)

	// 同一图书累加数量
	view, err = cart.AddItem(buyer.ID, book.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, int64(4500), view.SubtotalCents)

	// 加购不占库存
	assert.Equal(t, 5, bookStock(t, db, book.ID))
}

func TestCartAddItemValidation(t *testing.T) {
	db := newTestDB(t)
	cart := newCartLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1500, 2)
	buyer := seedBuyer(t, db, "buyer@example.com")

	_, err := cart.AddItem(buyer.ID, book.ID, 0)
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	_, err = cart.AddItem(buyer.ID, 9999, 1)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = cart.AddItem(buyer.ID, book.ID, 3)
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	// 累加后超出库存同样拒绝
	_, err = cart.AddItem(buyer.ID, book.ID, 2)
	require.NoError(t, err)
	_, err = cart.AddItem(buyer.ID, book.ID, 1)
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))
}

func TestCartPatchItemQty(t *testing.T) {
	db := newTestDB(t)
	cart := newCartLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Book One", 1000, 5)
	buyer := seedBuyer(t, db, "buyer@example.com")

	view, err := cart.AddItem(buyer.ID, book.ID, 1)
	require.NoError(t, err)
	itemID := view.Items[0].ItemID

	view, err = cart.PatchItemQty(buyer.ID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)

	_, err = cart.PatchItemQty(buyer.ID, itemID, 6)
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	_, err = cart.PatchItemQty(buyer.ID, 9999, 1)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	// 他人条目不可操作
	other := seedBuyer(t, db, "other@example.com")
	_, err = cart.PatchItemQty(other.ID, itemID, 1)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))
}

func TestCartDeleteItemAndClear(t *testing.T) {
	db := newTestDB(t)
	cart := newCartLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book1 := seedBook(t, db, seller.ID, "Book One", 1000, 5)
	book2 := seedBook(t, db, seller.ID, "Book Two", 2000, 5)
	buyer := seedBuyer(t, db, "buyer@example.com")

	view, err := cart.AddItem(buyer.ID, book1.ID, 1)
	require.NoError(t, err)
	itemID := view.Items[0].ItemID
	_, err = cart.AddItem(buyer.ID, book2.ID, 2)
	require.NoError(t, err)

	require.NoError(t, cart.DeleteItem(buyer.ID, itemID))
	view, err = cart.GetView(buyer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, book2.ID, view.Items[0].BookID)

	err = cart.DeleteItem(buyer.ID, itemID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	require.NoError(t, cart.Clear(nil, buyer.ID))
	view, err = cart.GetView(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.SubtotalCents)
}
