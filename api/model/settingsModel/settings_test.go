package settingsmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/test/helpers"
)

// TestSettingsRepository_SMTP tests saving twice and reading back the latest document
func TestSettingsRepository_SMTP(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	repo := NewSettingsRepository(helpers.GetTestDB(t, container), nil)

	_, err := repo.GetSMTP()
	assert.ErrorIs(t, err, util.ErrSMTPNotConfigured)

	require.NoError(t, repo.SaveSMTP([]byte(`{"host":"old.example.com"}`)))
	require.NoError(t, repo.SaveSMTP([]byte(`{"smtp":{"host":"smtp.example.com","port":465,"encryption":"ssl"},"adminEmail":"admin@example.com"}`)))

	settings, err := repo.GetSMTP()
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", settings.Host)
	assert.Equal(t, 465, settings.Port)
	assert.Equal(t, "admin@example.com", settings.AdminEmail)
}
