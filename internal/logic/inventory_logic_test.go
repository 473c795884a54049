package logic

import (
	"sync"
	"testing"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveStock(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Go in Action", 1000, 5)

	ok, err := inventory.ReserveStock(nil, book.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, bookStock(t, db, book.ID))

	// 剩余2本，再要3本必须整体失败且库存不变
	ok, err = inventory.ReserveStock(nil, book.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, bookStock(t, db, book.ID))

	ok, err = inventory.ReserveStock(nil, book.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, bookStock(t, db, book.ID))
}

func TestReserveStockUnknownBook(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryLogic(db)

	ok, err := inventory.ReserveStock(nil, 9999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReserveStockConcurrentNoOversell(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Go in Action", 1000, 5)

	const callers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := inventory.ReserveStock(nil, book.ID, 1)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, bookStock(t, db, book.ID))
}

func TestGetSnapshot(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryLogic(db)
	seller := seedSeller(t, db, "seller-a", 500)
	book := seedBook(t, db, seller.ID, "Go in Action", 1500, 7)

	snap, err := inventory.GetSnapshot(nil, book.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, snap.SellerID)
	assert.Equal(t, int64(1500), snap.UnitPriceCents)
	assert.Equal(t, 7, snap.Stock)
}

func TestGetSnapshotNotFound(t *testing.T) {
	db := newTestDB(t)
	inventory := NewInventoryLogic(db)

	_, err := inventory.GetSnapshot(nil, 42)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
