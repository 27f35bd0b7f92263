package model

import "gorm.io/datatypes"

const TableNameSetting = "settings"

// SettingsRowID is the single row holding application settings.
const SettingsRowID int64 = 1

// Setting mapped from table <settings>
type Setting struct {
	ID   int64          `gorm:"column:id;primaryKey" json:"id"`
	SMTP datatypes.JSON `gorm:"column:smtp" json:"smtp"`
}

func (*Setting) TableName() string {
	return TableNameSetting
}
