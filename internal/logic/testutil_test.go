package logic

import (
	"testing"

	"github.com/blues/bookstore/internal/database"
	"github.com/blues/bookstore/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存SQLite测试库；单连接保证事务与并发调用在连接层串行
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedSeller(t *testing.T, db *gorm.DB, name string, commissionBps int) *model.Seller {
	t.Helper()
	seller := &model.Seller{Name: name, CommissionBps: commissionBps, Status: model.SellerStatusActive}
	require.NoError(t, db.Create(seller).Error)
	return seller
}

func seedBook(t *testing.T, db *gorm.DB, sellerID int64, title string, priceCents int64, stock int) *model.Book {
	t.Helper()
	book := &model.Book{SellerID: sellerID, Title: title, PriceCents: priceCents, Stock: stock}
	require.NoError(t, db.Create(book).Error)
	return book
}

func seedBuyer(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Role: model.RoleBuyer}
	require.NoError(t, db.Create(user).Error)
	return user
}

func bookStock(t *testing.T, db *gorm.DB, bookID int64) int {
	t.Helper()
	var book model.Book
	require.NoError(t, db.Take(&book, bookID).Error)
	return book.Stock
}
