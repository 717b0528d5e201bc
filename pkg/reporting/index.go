package reporting

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/agentreport/models"
)

// DocumentIndex remembers which report produced which stored document.
type DocumentIndex interface {
	Record(ctx context.Context, doc *models.ReportDocument) error
}

// GormIndex keeps the index in the report_documents table.
type GormIndex struct {
	DB *gorm.DB
}

// Record inserts the row or refreshes it when the file name already exists.
func (g GormIndex) Record(ctx context.Context, doc *models.ReportDocument) error {
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "number", "order_ref", "cargo", "payload", "size", "updated_at"}),
	}).Create(doc).Error
}

func newIndexEntry(name string, r models.Report, size int64, author string) (*models.ReportDocument, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return &models.ReportDocument{
		FileName:  name,
		Kind:      r.Kind.Normalize(),
		Number:    r.Number,
		Order:     r.Order,
		Cargo:     r.Cargos(),
		Payload:   datatypes.JSON(payload),
		Size:      size,
		CreatedBy: author,
	}, nil
}
