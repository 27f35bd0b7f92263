package eventmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attendee list columns that can be replaced wholesale.
const (
	ListAttendees = "attendees"
	ListAttended  = "attended"
	ListPaid      = "paid"
)

var ErrUnknownList = errors.New("unknown attendee list")

type EventRepository struct {
	db    *gorm.DB
	oplog operationlogmodel.IOperationLogRepository
}

func NewEventRepository(db *gorm.DB, oplog operationlogmodel.IOperationLogRepository) *EventRepository {
	return &EventRepository{db: db, oplog: oplog}
}

func (r *EventRepository) record(op string, id int64, details map[string]any) {
	operationlogmodel.Log(r.oplog, model.TableNameEvent, op, strconv.FormatInt(id, 10), details)
}

// List returns one page of events, newest first, with the total match count.
func (r *EventRepository) List(search string, page, limit int) ([]*model.Event, int64, error) {
	byName := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if countErr := r.db.Model(&model.Event{}).Scopes(byName).Count(&total).Error; countErr != nil {
		slog.Error("Event List count", "error", countErr)
		return nil, 0, countErr
	}

	events := make([]*model.Event, 0)
	queryErr := r.db.Scopes(byName).Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&events).Error
	if queryErr != nil {
		slog.Error("Event List", "error", queryErr)
		return nil, 0, queryErr
	}

	return events, total, nil
}

func (r *EventRepository) GetByID(id int64) (*model.Event, error) {
	event := new(model.Event)
	queryErr := r.db.First(event, id).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Event GetByID", "error", queryErr, "id", id)
		return nil, queryErr
	}

	return event, nil
}

func (r *EventRepository) Autocomplete(search string, limit int) ([]model.EventOption, error) {
	query := r.db.Model(&model.Event{}).Select("id", "name")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	options := make([]model.EventOption, 0)
	if queryErr := query.Order("name ASC").Limit(limit).Scan(&options).Error; queryErr != nil {
		slog.Error("Event Autocomplete", "error", queryErr)
		return nil, queryErr
	}
	return options, nil
}

func (r *EventRepository) Create(data payload.CreateEventPayload) (*model.Event, error) {
	event := &model.Event{
		Name:        data.Name,
		Description: data.Description,
		Date:        data.Date,
		Location:    data.Location,
		Form:        data.Form,
		Emails:      datatypes.NewJSONType(data.Emails),
		Attendees:   []string{},
		Attended:    []string{},
		Paid:        []string{},
	}

	if createErr := r.db.Create(event).Error; createErr != nil {
		slog.Error("Event Create", "error", createErr, "name", data.Name)
		return nil, createErr
	}

	r.record(operationlogmodel.OperationCreate, event.ID, map[string]any{"name": event.Name})
	return event, nil
}

func (r *EventRepository) Update(id int64, data payload.UpdateEventPayload) (*model.Event, error) {
	updates := make(map[string]any)
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.Date != nil {
		updates["date"] = *data.Date
	}
	if data.Location != nil {
		updates["location"] = *data.Location
	}
	if data.Form != nil {
		updates["form"] = datatypes.JSONSlice[model.FormField](*data.Form)
	}

	return r.applyUpdates(id, updates)
}

func (r *EventRepository) applyUpdates(id int64, updates map[string]any) (*model.Event, error) {
	event, err := r.GetByID(id)
	if err != nil || event == nil {
		return nil, err
	}
	if len(updates) == 0 {
		return event, nil
	}

	if updateErr := r.db.Model(event).Updates(updates).Error; updateErr != nil {
		slog.Error("Event Update", "error", updateErr, "id", id)
		return nil, updateErr
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	r.record(operationlogmodel.OperationUpdate, id, map[string]any{"fields": fields})

	return r.GetByID(id)
}

// MergeEmail stores tmpl as the event's template for kind, keeping the others.
func (r *EventRepository) MergeEmail(id int64, kind string, tmpl model.EmailTemplate) (*model.Event, error) {
	event, err := r.GetByID(id)
	if err != nil || event == nil {
		return nil, err
	}

	emails := model.EmailTemplates{}
	for k, v := range event.Emails.Data() {
		emails[k] = v
	}
	emails[kind] = tmpl

	return r.applyUpdates(id, map[string]any{"emails": datatypes.NewJSONType(emails)})
}

// ReplaceList overwrites one of the attendee id lists.
func (r *EventRepository) ReplaceList(id int64, list string, ids []string) (*model.Event, error) {
	switch list {
	case ListAttendees, ListAttended, ListPaid:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
	if ids == nil {
		ids = []string{}
	}
	return r.applyUpdates(id, map[string]any{list: datatypes.JSONSlice[string](ids)})
}

func (r *EventRepository) Delete(id int64) (*model.Event, error) {
	event, err := r.GetByID(id)
	if err != nil || event == nil {
		return nil, err
	}

	if deleteErr := r.db.Delete(event).Error; deleteErr != nil {
		slog.Error("Event Delete", "error", deleteErr, "id", id)
		return nil, deleteErr
	}

	r.record(operationlogmodel.OperationDelete, id, map[string]any{"name": event.Name})
	return event, nil
}
