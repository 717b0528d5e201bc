package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportDocument indexes a generated report file together with the
// report payload it was built from.
type ReportDocument struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FileName  string         `gorm:"column:file_name;size:512;uniqueIndex;not null" json:"fileName"`
	Kind      ReportKind     `gorm:"column:kind;size:50;not null"                   json:"kind"`
	Number    string         `gorm:"column:number;size:100;index"                   json:"number"`
	Order     string         `gorm:"column:order_ref;size:100;index"                json:"order"`
	Cargo     pq.StringArray `gorm:"column:cargo;type:text[]"                       json:"cargo"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb;not null"             json:"payload"`
	Size      int64          `gorm:"column:size"                                    json:"size"`
	CreatedBy string         `gorm:"column:created_by;size:255"                     json:"createdBy,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime"                                 json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"                                 json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"                                          json:"-"`
}

func (ReportDocument) TableName() string {
	return "report_documents"
}
