package pkg

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type ledgerRow struct {
	ID      uint `gorm:"primaryKey"`
	Balance int64
}

func setupTxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&ledgerRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&ledgerRow{ID: 1, Balance: 100}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func balance(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var row ledgerRow
	if err := db.First(&row, 1).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	return row.Balance
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupTxTestDB(t)

	err := WithTx(db, func(tx *gorm.DB) error {
		return tx.Model(&ledgerRow{}).Where("id = ?", 1).Update("balance", 250).Error
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if got := balance(t, db); got != 250 {
		t.Errorf("balance = %d, want committed 250", got)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupTxTestDB(t)
	boom := errors.New("insufficient funds")

	err := WithTx(db, func(tx *gorm.DB) error {
		if err := tx.Model(&ledgerRow{}).Where("id = ?", 1).Update("balance", 0).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want the callback's error", err)
	}
	if got := balance(t, db); got != 100 {
		t.Errorf("balance = %d, want rolled back 100", got)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupTxTestDB(t)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("panic must propagate out of WithTx")
			}
		}()
		_ = WithTx(db, func(tx *gorm.DB) error {
			if err := tx.Model(&ledgerRow{}).Where("id = ?", 1).Update("balance", 0).Error; err != nil {
				return err
			}
			panic("mid-transaction failure")
		})
	}()

	if got := balance(t, db); got != 100 {
		t.Errorf("balance = %d, want rolled back 100", got)
	}
}

func TestWithTx_SequentialTransactions(t *testing.T) {
	db := setupTxTestDB(t)

	for i := 0; i < 3; i++ {
		err := WithTx(db, func(tx *gorm.DB) error {
			var row ledgerRow
			if err := tx.First(&row, 1).Error; err != nil {
				return err
			}
			return tx.Model(&row).Update("balance", row.Balance+10).Error
		})
		if err != nil {
			t.Fatalf("WithTx #%d: %v", i, err)
		}
	}
	if got := balance(t, db); got != 130 {
		t.Errorf("balance = %d, want 130 after three increments", got)
	}
}
