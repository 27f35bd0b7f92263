package operationlogmodel

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"

	DefaultListLimit = 100
	recordTimeout    = 5 * time.Second
)

type IOperationLogRepository interface {
	// Record stores entry in the background. Failures are only logged.
	Record(entry model.OperationLog)
	List(table string, limit int) ([]*model.OperationLog, error)
}

// New picks the mongo-backed log when a database is available and the
// file-backed one otherwise.
func New(db *mongo.Database, dir string) IOperationLogRepository {
	if db != nil {
		return NewMongoOperationLogRepository(db)
	}
	return NewFileOperationLogRepository(dir, time.Now)
}

func prepare(entry *model.OperationLog, now time.Time) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return DefaultListLimit
	}
	return limit
}

type MongoOperationLogRepository struct {
	collection *mongo.Collection
}

func NewMongoOperationLogRepository(db *mongo.Database) *MongoOperationLogRepository {
	return &MongoOperationLogRepository{collection: db.Collection(model.CollectionOperationLog)}
}

func (r *MongoOperationLogRepository) Record(entry model.OperationLog) {
	prepare(&entry, time.Now())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if _, err := r.collection.InsertOne(ctx, entry); err != nil {
			slog.Error("OperationLog Record", "error", err, "table", entry.Table, "operation", entry.Operation)
		}
	}()
}

func (r *MongoOperationLogRepository) List(table string, limit int) ([]*model.OperationLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	filter := bson.M{}
	if table != "" {
		filter["table"] = table
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(clampLimit(limit)))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		slog.Error("OperationLog List", "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := make([]*model.OperationLog, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		slog.Error("OperationLog List decode", "error", err)
		return nil, err
	}
	return logs, nil
}

// FileOperationLogRepository appends JSON lines to logs/db-YYYY-MM-DD.log.
type FileOperationLogRepository struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
	wg  sync.WaitGroup
}

func NewFileOperationLogRepository(dir string, now func() time.Time) *FileOperationLogRepository {
	if now == nil {
		now = time.Now
	}
	return &FileOperationLogRepository{dir: dir, now: now}
}

func (r *FileOperationLogRepository) path(day time.Time) string {
	return filepath.Join(r.dir, fmt.Sprintf("db-%s.log", day.Format(time.DateOnly)))
}

func (r *FileOperationLogRepository) Record(entry model.OperationLog) {
	prepare(&entry, r.now())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.append(entry); err != nil {
			slog.Error("OperationLog Record", "error", err, "table", entry.Table, "operation", entry.Operation)
		}
	}()
}

// Flush waits for pending writes.
func (r *FileOperationLogRepository) Flush() {
	r.wg.Wait()
}

func (r *FileOperationLogRepository) append(entry model.OperationLog) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path(entry.CreatedAt), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// List reads the newest files first until limit entries are collected.
func (r *FileOperationLogRepository) List(table string, limit int) ([]*model.OperationLog, error) {
	limit = clampLimit(limit)

	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(r.dir, "db-*.log"))
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	logs := make([]*model.OperationLog, 0)
	for _, file := range files {
		entries, err := readEntries(file, table)
		if err != nil {
			slog.Error("OperationLog List read", "error", err, "file", file)
			return nil, err
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
		for _, e := range entries {
			logs = append(logs, e)
			if len(logs) == limit {
				return logs, nil
			}
		}
	}
	return logs, nil
}

func readEntries(file, table string) ([]*model.OperationLog, error) {
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []*model.OperationLog
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry := new(model.OperationLog)
		if err := json.Unmarshal([]byte(line), entry); err != nil {
			slog.Warn("OperationLog skipping malformed line", "file", file, "error", err)
			continue
		}
		if table != "" && entry.Table != table {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// Log records a write when r is set.
func Log(r IOperationLogRepository, table, operation, recordID string, details map[string]any) {
	if r == nil {
		return
	}
	r.Record(model.OperationLog{
		Table:     table,
		Operation: operation,
		RecordID:  recordID,
		Details:   details,
	})
}
