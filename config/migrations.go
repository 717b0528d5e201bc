package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/agentreport/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20240201_create_surveyors",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Surveyor{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("surveyors")
			},
		},
		{
			ID: "20240215_create_report_documents",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
					return err
				}
				return tx.AutoMigrate(&models.ReportDocument{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("report_documents")
			},
		},
		{
			ID: "20240301_index_report_documents_cargo",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_report_documents_cargo ON report_documents USING GIN (cargo)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_report_documents_cargo").Error
			},
		},
	})
	return m.Migrate()
}
