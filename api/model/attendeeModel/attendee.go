package attendeemodel

import (
	"errors"
	"log/slog"
	"strings"

	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttendeeRepository struct {
	db    *gorm.DB
	oplog operationlogmodel.IOperationLogRepository
}

func NewAttendeeRepository(db *gorm.DB, oplog operationlogmodel.IOperationLogRepository) *AttendeeRepository {
	return &AttendeeRepository{db: db, oplog: oplog}
}

func (r *AttendeeRepository) record(op, id string, details map[string]any) {
	operationlogmodel.Log(r.oplog, model.TableNameAttendee, op, id, details)
}

func (r *AttendeeRepository) first(query string, args ...any) (*model.Attendee, error) {
	attendee := new(model.Attendee)
	queryErr := r.db.Where(query, args...).First(attendee).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, queryErr
	}
	return attendee, nil
}

func (r *AttendeeRepository) GetByEmail(email string) (*model.Attendee, error) {
	attendee, err := r.first("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		slog.Error("Attendee GetByEmail", "error", err)
	}
	return attendee, err
}

func (r *AttendeeRepository) GetByID(id string) (*model.Attendee, error) {
	attendee, err := r.first("id = ?", id)
	if err != nil {
		slog.Error("Attendee GetByID", "error", err, "id", id)
	}
	return attendee, err
}

func (r *AttendeeRepository) GetByIDs(ids []string) ([]*model.Attendee, error) {
	attendees := make([]*model.Attendee, 0, len(ids))
	if len(ids) == 0 {
		return attendees, nil
	}

	if queryErr := r.db.Where("id IN ?", ids).Order("last_name, first_name").Find(&attendees).Error; queryErr != nil {
		slog.Error("Attendee GetByIDs", "error", queryErr, "count", len(ids))
		return nil, queryErr
	}
	return attendees, nil
}

// Search matches first name, last name and email case-insensitively.
func (r *AttendeeRepository) Search(search string, page, limit int) ([]*model.Attendee, int64, error) {
	matching := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + search + "%"
		return db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if countErr := r.db.Model(&model.Attendee{}).Scopes(matching).Count(&total).Error; countErr != nil {
		slog.Error("Attendee Search count", "error", countErr)
		return nil, 0, countErr
	}

	attendees := make([]*model.Attendee, 0)
	queryErr := r.db.Scopes(matching).Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&attendees).Error
	if queryErr != nil {
		slog.Error("Attendee Search", "error", queryErr)
		return nil, 0, queryErr
	}
	return attendees, total, nil
}

// Save updates the attendee registered under the same email or inserts a new
// one. The returned flag reports whether a row was created.
func (r *AttendeeRepository) Save(data payload.SaveAttendeePayload) (*model.Attendee, bool, error) {
	existing, err := r.GetByEmail(data.Email)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		attendee := &model.Attendee{
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Email:     strings.TrimSpace(data.Email),
			EventID:   data.EventID,
			Events:    []int64{},
			Data:      datatypes.JSONMap(data.Data),
		}
		if data.EventID != nil {
			attendee.Events = append(attendee.Events, *data.EventID)
		}

		if createErr := r.db.Create(attendee).Error; createErr != nil {
			slog.Error("Attendee Save create", "error", createErr, "email", data.Email)
			return nil, false, util.TranslateUniqueViolation(createErr)
		}

		r.record(operationlogmodel.OperationCreate, attendee.ID.String(), nil)
		return attendee, true, nil
	}

	existing.FirstName = data.FirstName
	existing.LastName = data.LastName
	if data.Data != nil {
		existing.Data = datatypes.JSONMap(data.Data)
	}
	if data.EventID != nil {
		existing.EventID = data.EventID
		existing.Events = appendEvent(existing.Events, *data.EventID)
	}

	if saveErr := r.db.Save(existing).Error; saveErr != nil {
		slog.Error("Attendee Save update", "error", saveErr, "id", existing.ID)
		return nil, false, util.TranslateUniqueViolation(saveErr)
	}

	r.record(operationlogmodel.OperationUpdate, existing.ID.String(), map[string]any{"source": "save"})
	return existing, false, nil
}

func appendEvent(events []int64, eventID int64) []int64 {
	for _, id := range events {
		if id == eventID {
			return events
		}
	}
	return append(events, eventID)
}

func (r *AttendeeRepository) UpdateEvents(id string, events []int64) (*model.Attendee, error) {
	if events == nil {
		events = []int64{}
	}
	return r.applyUpdates(id, map[string]any{"events": datatypes.JSONSlice[int64](events)})
}

func (r *AttendeeRepository) Update(id string, data payload.UpdateAttendeePayload) (*model.Attendee, error) {
	updates := make(map[string]any)
	if data.FirstName != nil {
		updates["first_name"] = *data.FirstName
	}
	if data.LastName != nil {
		updates["last_name"] = *data.LastName
	}
	if data.Email != nil {
		updates["email"] = strings.TrimSpace(*data.Email)
	}
	if data.Data != nil {
		updates["data"] = datatypes.JSONMap(data.Data)
	}
	return r.applyUpdates(id, updates)
}

func (r *AttendeeRepository) applyUpdates(id string, updates map[string]any) (*model.Attendee, error) {
	attendee, err := r.GetByID(id)
	if err != nil || attendee == nil {
		return nil, err
	}
	if len(updates) == 0 {
		return attendee, nil
	}

	if updateErr := r.db.Model(attendee).Updates(updates).Error; updateErr != nil {
		slog.Error("Attendee Update", "error", updateErr, "id", id)
		return nil, util.TranslateUniqueViolation(updateErr)
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	r.record(operationlogmodel.OperationUpdate, id, map[string]any{"fields": fields})

	return r.GetByID(id)
}

func (r *AttendeeRepository) Delete(id string) (*model.Attendee, error) {
	attendee, err := r.GetByID(id)
	if err != nil || attendee == nil {
		return nil, err
	}

	if deleteErr := r.db.Delete(attendee).Error; deleteErr != nil {
		slog.Error("Attendee Delete", "error", deleteErr, "id", id)
		return nil, deleteErr
	}

	r.record(operationlogmodel.OperationDelete, id, map[string]any{"email": attendee.Email})
	return attendee, nil
}
