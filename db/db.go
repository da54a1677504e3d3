package db

import (
	"Gin_postgres_redis_equipment_loan/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Unit{},
		&models.UnitStatus{},
		&models.LoanTransaction{},
		&models.Reservation{},
		&models.ReservationLine{},
	); err != nil {
		return err
	}

	// 同一件设备最多一条 Active 交易
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_unit
	  ON %s (unit_id)
	  WHERE status = 'Active';
	`, models.TxnTable, models.TxnTable)).Error; err != nil {
		return err
	}

	// forms 视图按借出时间倒序查得更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_loandate_desc_form
	  ON %s (loan_date DESC, form_id);
	`, models.TxnTable, models.TxnTable)).Error; err != nil {
		return err
	}

	return nil
}
