package certificatemodel

import (
	"errors"
	"log/slog"
	"strconv"

	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	db    *gorm.DB
	oplog operationlogmodel.IOperationLogRepository
}

func NewCertificateRepository(db *gorm.DB, oplog operationlogmodel.IOperationLogRepository) *CertificateRepository {
	return &CertificateRepository{db: db, oplog: oplog}
}

func (r *CertificateRepository) record(op string, id int64, details map[string]any) {
	operationlogmodel.Log(r.oplog, model.TableNameCertificate, op, strconv.FormatInt(id, 10), details)
}

// GetByEventID returns the latest template of the event.
func (r *CertificateRepository) GetByEventID(eventID int64) (*model.Certificate, error) {
	cert := new(model.Certificate)
	queryErr := r.db.Where("event = ?", eventID).Order("id DESC").First(cert).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Certificate GetByEventID", "error", queryErr, "event_id", eventID)
		return nil, queryErr
	}

	return cert, nil
}

func (r *CertificateRepository) GetByID(id int64) (*model.Certificate, error) {
	cert := new(model.Certificate)
	queryErr := r.db.First(cert, id).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Certificate GetByID", "error", queryErr, "id", id)
		return nil, queryErr
	}

	return cert, nil
}

func (r *CertificateRepository) FetchAllByEventID(eventID int64) ([]*model.Certificate, error) {
	certs := make([]*model.Certificate, 0)
	queryErr := r.db.Where("event = ?", eventID).Order("id DESC").Find(&certs).Error

	if queryErr != nil {
		slog.Error("Certificate FetchAllByEventID", "error", queryErr, "event_id", eventID)
		return nil, queryErr
	}

	return certs, nil
}

// UpsertForEvent overwrites the latest template of the event, or creates the
// first one.
func (r *CertificateRepository) UpsertForEvent(eventID int64, data []byte) (*model.Certificate, error) {
	existing, err := r.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return r.CreateForEvent(eventID, data)
	}
	return r.UpdateByID(existing.ID, data)
}

func (r *CertificateRepository) CreateForEvent(eventID int64, data []byte) (*model.Certificate, error) {
	cert := &model.Certificate{
		Event: eventID,
		Data:  datatypes.JSON(data),
	}

	if createErr := r.db.Create(cert).Error; createErr != nil {
		slog.Error("Certificate CreateForEvent", "error", createErr, "event_id", eventID)
		return nil, createErr
	}

	r.record(operationlogmodel.OperationCreate, cert.ID, map[string]any{"event": eventID})
	return cert, nil
}

func (r *CertificateRepository) UpdateByID(id int64, data []byte) (*model.Certificate, error) {
	cert, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, nil
	}

	cert.Data = datatypes.JSON(data)
	if updateErr := r.db.Model(cert).Update("data", cert.Data).Error; updateErr != nil {
		slog.Error("Certificate UpdateByID", "error", updateErr, "id", id)
		return nil, updateErr
	}

	r.record(operationlogmodel.OperationUpdate, id, map[string]any{"event": cert.Event})
	return cert, nil
}

func (r *CertificateRepository) RemoveByID(id int64) (*model.Certificate, error) {
	cert, err := r.GetByID(id)
	if err != nil || cert == nil {
		return nil, err
	}

	if deleteErr := r.db.Delete(cert).Error; deleteErr != nil {
		slog.Error("Certificate RemoveByID", "error", deleteErr, "id", id)
		return nil, deleteErr
	}

	r.record(operationlogmodel.OperationDelete, id, nil)
	return cert, nil
}

func (r *CertificateRepository) RemoveForEvent(eventID int64) (int64, error) {
	result := r.db.Where("event = ?", eventID).Delete(&model.Certificate{})
	if result.Error != nil {
		slog.Error("Certificate RemoveForEvent", "error", result.Error, "event_id", eventID)
		return 0, result.Error
	}

	operationlogmodel.Log(r.oplog, model.TableNameCertificate, operationlogmodel.OperationDelete, "",
		map[string]any{"event": eventID, "count": result.RowsAffected})
	return result.RowsAffected, nil
}

// RemoveByFilename deletes every template drawn on filename.
func (r *CertificateRepository) RemoveByFilename(filename string) (int64, error) {
	result := r.db.Where("data->>'certificateFilename' = ?", filename).Delete(&model.Certificate{})
	if result.Error != nil {
		slog.Error("Certificate RemoveByFilename", "error", result.Error, "filename", filename)
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		operationlogmodel.Log(r.oplog, model.TableNameCertificate, operationlogmodel.OperationDelete, "",
			map[string]any{"certificateFilename": filename, "count": result.RowsAffected})
	}
	return result.RowsAffected, nil
}
