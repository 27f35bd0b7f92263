package settingsmodel

import (
	"errors"
	"log/slog"
	"strconv"

	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db    *gorm.DB
	oplog operationlogmodel.IOperationLogRepository
}

func NewSettingsRepository(db *gorm.DB, oplog operationlogmodel.IOperationLogRepository) *SettingsRepository {
	return &SettingsRepository{db: db, oplog: oplog}
}

// GetSMTPRaw returns the stored smtp document, or nil when none was saved.
func (r *SettingsRepository) GetSMTPRaw() ([]byte, error) {
	setting := new(model.Setting)
	queryErr := r.db.First(setting, model.SettingsRowID).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Settings GetSMTPRaw", "error", queryErr)
		return nil, queryErr
	}

	return setting.SMTP, nil
}

// GetSMTP parses the stored settings. It returns util.ErrSMTPNotConfigured
// when nothing usable is stored.
func (r *SettingsRepository) GetSMTP() (*util.SMTPSettings, error) {
	raw, err := r.GetSMTPRaw()
	if err != nil {
		return nil, err
	}
	return util.ParseSMTPSettings(raw)
}

func (r *SettingsRepository) SaveSMTP(raw []byte) error {
	setting := &model.Setting{ID: model.SettingsRowID, SMTP: datatypes.JSON(raw)}

	saveErr := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"smtp"}),
	}).Create(setting).Error
	if saveErr != nil {
		slog.Error("Settings SaveSMTP", "error", saveErr)
		return saveErr
	}

	operationlogmodel.Log(r.oplog, model.TableNameSetting, operationlogmodel.OperationUpdate,
		strconv.FormatInt(model.SettingsRowID, 10), map[string]any{"column": "smtp"})
	return nil
}
