package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

// PostgresContainer holds the test database container
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *gorm.DB
	ConnStr   string
}

// SetupTestDatabase creates a PostgreSQL container and returns a GORM DB connection.
// Tests using it are skipped under -short.
func SetupTestDatabase(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgrescontainer.WithDatabase("test_eventcert"),
		postgrescontainer.WithUsername("test"),
		postgrescontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&model.Event{},
		&model.Attendee{},
		&model.Certificate{},
		&model.Setting{},
		&model.Accommodation{},
	)
	require.NoError(t, err, "Failed to run migrations")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	return &PostgresContainer{
		Container: postgresContainer,
		DB:        db,
		ConnStr:   connStr,
	}
}

// GetTestDB returns a DB transaction that auto-rollbacks for test isolation
func GetTestDB(t *testing.T, container *PostgresContainer) *gorm.DB {
	tx := container.DB.Begin()
	require.NoError(t, tx.Error, "Failed to begin transaction")

	t.Cleanup(func() {
		tx.Rollback()
	})

	return tx
}

// SeedEvent inserts an event with a small registration form.
func SeedEvent(t *testing.T, db *gorm.DB, name string) *model.Event {
	event := &model.Event{
		Name: name,
		Form: []model.FormField{
			{ID: "field_1", Name: "company", Label: "Company"},
			{ID: "field_2", Name: "licence_number", Label: "Licence"},
		},
	}
	require.NoError(t, db.Create(event).Error, "Failed to seed event")
	return event
}

// SeedAttendee inserts an attendee registered for event.
func SeedAttendee(t *testing.T, db *gorm.DB, event *model.Event, first, last, email string) *model.Attendee {
	attendee := &model.Attendee{
		FirstName: first,
		LastName:  last,
		Email:     email,
		EventID:   &event.ID,
		Events:    []int64{event.ID},
		Data:      map[string]any{"company": "Acme"},
	}
	require.NoError(t, db.Create(attendee).Error, "Failed to seed attendee")
	return attendee
}

// CleanupTestData removes all data from tables (for tests not using transactions)
func CleanupTestData(t *testing.T, db *gorm.DB) {
	tables := []string{
		model.TableNameAccommodation,
		model.TableNameCertificate,
		model.TableNameAttendee,
		model.TableNameEvent,
		model.TableNameSetting,
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// AssertRecordExists checks if a record exists in the database
func AssertRecordExists(t *testing.T, db *gorm.DB, model any, condition string, args ...any) {
	var count int64
	err := db.Model(model).Where(condition, args...).Count(&count).Error
	require.NoError(t, err, "Failed to count records")
	require.Greater(t, count, int64(0), "Expected record to exist but found none")
}

// AssertRecordNotExists checks that a record does not exist
func AssertRecordNotExists(t *testing.T, db *gorm.DB, model any, condition string, args ...any) {
	var count int64
	err := db.Model(model).Where(condition, args...).Count(&count).Error
	require.NoError(t, err, "Failed to count records")
	require.Equal(t, int64(0), count, "Expected no records but found %d", count)
}
