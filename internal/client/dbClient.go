package client

import (
	"fmt"
	"log"
	"strings"
	"time"

	"storefront-api/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string, lockWait time.Duration) *gorm.DB {
	db, err := gorm.Open(mysql.Open(withLockWait(databaseURL, lockWait)), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for payment callbacks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Option{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Address{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}

// withLockWait caps InnoDB row-lock waits so a reservation blocked behind a
// concurrent transaction fails fast instead of hanging the request.
func withLockWait(databaseURL string, lockWait time.Duration) string {
	if lockWait <= 0 {
		return databaseURL
	}
	sep := "?"
	if strings.Contains(databaseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sinnodb_lock_wait_timeout=%d", databaseURL, sep, int(lockWait.Seconds()))
}
