package accommodationmodel

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

type AccommodationRepository struct {
	db    *gorm.DB
	oplog operationlogmodel.IOperationLogRepository
}

func NewAccommodationRepository(db *gorm.DB, oplog operationlogmodel.IOperationLogRepository) *AccommodationRepository {
	return &AccommodationRepository{db: db, oplog: oplog}
}

func (r *AccommodationRepository) record(op string, id int64, details map[string]any) {
	operationlogmodel.Log(r.oplog, model.TableNameAccommodation, op, strconv.FormatInt(id, 10), details)
}

// List returns every accommodation, or only those linked to eventID when set.
func (r *AccommodationRepository) List(eventID *int64) ([]*model.Accommodation, error) {
	query := r.db.Order("name ASC")
	if eventID != nil {
		query = query.Where("event_id @> ?", fmt.Sprintf("[%d]", *eventID))
	}

	accommodations := make([]*model.Accommodation, 0)
	if queryErr := query.Find(&accommodations).Error; queryErr != nil {
		slog.Error("Accommodation List", "error", queryErr, "event_id", eventID)
		return nil, queryErr
	}
	return accommodations, nil
}

// Available returns enabled accommodations of the event with at least one free bed.
func (r *AccommodationRepository) Available(eventID int64) ([]*model.Accommodation, error) {
	all, err := r.List(&eventID)
	if err != nil {
		return nil, err
	}

	available := make([]*model.Accommodation, 0, len(all))
	for _, acc := range all {
		if acc.IsEnabled() && acc.TotalAvailable() > 0 {
			available = append(available, acc)
		}
	}
	return available, nil
}

func (r *AccommodationRepository) GetByID(id int64) (*model.Accommodation, error) {
	acc := new(model.Accommodation)
	queryErr := r.db.First(acc, id).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Accommodation GetByID", "error", queryErr, "id", id)
		return nil, queryErr
	}
	return acc, nil
}

func (r *AccommodationRepository) Create(data payload.CreateAccommodationPayload) (*model.Accommodation, error) {
	eventIDs := []int64(data.EventID)
	if eventIDs == nil {
		eventIDs = []int64{}
	}
	rooms := data.Rooms
	if rooms == nil {
		rooms = []model.Room{}
	}
	enabled := true
	if data.Enabled != nil {
		enabled = *data.Enabled
	}

	acc := &model.Accommodation{
		Name:         data.Name,
		Address:      data.Address,
		Description:  data.Description,
		EventID:      eventIDs,
		Rooms:        rooms,
		Reservations: []model.Reservation{},
		Enabled:      &enabled,
	}

	if createErr := r.db.Create(acc).Error; createErr != nil {
		slog.Error("Accommodation Create", "error", createErr, "name", data.Name)
		return nil, createErr
	}

	r.record(operationlogmodel.OperationCreate, acc.ID, map[string]any{"name": acc.Name})
	return acc, nil
}

func (r *AccommodationRepository) Update(id int64, data payload.UpdateAccommodationPayload) (*model.Accommodation, error) {
	acc, err := r.GetByID(id)
	if err != nil || acc == nil {
		return nil, err
	}

	updates := make(map[string]any)
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Address != nil {
		updates["address"] = *data.Address
	}
	if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.EventID != nil {
		ids := []int64(*data.EventID)
		if ids == nil {
			ids = []int64{}
		}
		updates["event_id"] = datatypes.JSONSlice[int64](ids)
	}
	if data.Rooms != nil {
		updates["rooms"] = datatypes.JSONSlice[model.Room](*data.Rooms)
	}
	if data.Enabled != nil {
		updates["enabled"] = *data.Enabled
	}
	if len(updates) == 0 {
		return acc, nil
	}

	if updateErr := r.db.Model(acc).Updates(updates).Error; updateErr != nil {
		slog.Error("Accommodation Update", "error", updateErr, "id", id)
		return nil, updateErr
	}

	r.record(operationlogmodel.OperationUpdate, id, nil)
	return r.GetByID(id)
}

func (r *AccommodationRepository) Delete(id int64) (*model.Accommodation, error) {
	acc, err := r.GetByID(id)
	if err != nil || acc == nil {
		return nil, err
	}

	if deleteErr := r.db.Delete(acc).Error; deleteErr != nil {
		slog.Error("Accommodation Delete", "error", deleteErr, "id", id)
		return nil, deleteErr
	}

	r.record(operationlogmodel.OperationDelete, id, map[string]any{"name": acc.Name})
	return acc, nil
}
