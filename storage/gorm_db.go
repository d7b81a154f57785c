package storage

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vendorportal/models"
)

var gormDB *gorm.DB

// InitGormDB initializes the GORM connection used for the portal activity log.
// The activity log is best-effort; a failed connection logs and returns nil.
func InitGormDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port)

	var err error
	gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Println("[storage] failed to connect with GORM:", err)
		gormDB = nil
		return nil
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Println("[storage] failed to get underlying sql.DB:", err)
		gormDB = nil
		return nil
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := gormDB.AutoMigrate(&models.PortalActivityLog{}); err != nil {
		log.Println("[storage] failed to migrate activity log:", err)
	}

	return gormDB
}

// GetGormDB returns the GORM database instance
func GetGormDB() *gorm.DB {
	return gormDB
}

// LogActivity writes one activity record. Nil-db and write errors are
// swallowed after logging; auditing never blocks a request.
func LogActivity(db *gorm.DB, eventContext, eventName, description, sessionID string) {
	if db == nil {
		return
	}
	entry := models.PortalActivityLog{
		EventContext: eventContext,
		EventName:    eventName,
		Description:  description,
		SessionID:    sessionID,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Println("[activity-log] failed to record event:", err)
	}
}
