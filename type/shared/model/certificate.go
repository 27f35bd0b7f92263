package model

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameCertificate = "certificates"

// Certificate mapped from table <certificates>. Data holds the editor's
// template document as-is.
type Certificate struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Event     int64          `gorm:"column:event;not null;index" json:"event"`
	Data      datatypes.JSON `gorm:"column:data" json:"data"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Certificate) TableName() string {
	return TableNameCertificate
}
