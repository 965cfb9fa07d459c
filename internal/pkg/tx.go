package pkg

import "gorm.io/gorm"

// WithTx runs fn inside one database transaction: commit when fn returns
// nil, roll back when it returns an error or panics. It is used wherever a
// mutation must touch more than one row atomically, such as settling a
// ledger entry against its wallet balance.
func WithTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
