package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key so host settings do not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "Sheet1!A:K", cfg.SheetRange)
	assert.Equal(t, "service_account.json", cfg.ServiceAccountFile)
	assert.Equal(t, 14, cfg.InventoryDays)
	assert.Equal(t, "veg", cfg.InventoryCategory)
	assert.Equal(t, StoreFile, cfg.StoreType)
	assert.Equal(t, "memory_bank.json", cfg.MemoryPath)
}

func TestLoad_EnvFileAndOverride(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GEMINI_API_KEY=file-key\nGOOGLE_SHEET_ID=sheet-from-file\nINVENTORY_DAYS=7\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("GOOGLE_SHEET_ID", "sheet-from-env")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "sheet-from-env", cfg.SheetID)
	assert.Equal(t, 7, cfg.InventoryDays)
}

func TestLoad_GoogleAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.APIKey)
}

func TestLoad_InvalidStoreType(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_TYPE", "redis")

	_, err := Load("")
	assert.ErrorContains(t, err, "STORE_TYPE")
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_TYPE", StorePostgres)

	_, err := Load("")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidatePipeline(t *testing.T) {
	base := Config{
		APIKey:     "key",
		WebhookURL: "https://discord.example/webhook",
		SheetID:    "sheet",
	}
	assert.NoError(t, base.ValidatePipeline(false))

	noKey := base
	noKey.APIKey = ""
	assert.ErrorContains(t, noKey.ValidatePipeline(false), "GEMINI_API_KEY")

	noHook := base
	noHook.WebhookURL = ""
	assert.Error(t, noHook.ValidatePipeline(false))
	assert.NoError(t, noHook.ValidatePipeline(true))

	noSource := base
	noSource.SheetID = ""
	assert.ErrorContains(t, noSource.ValidatePipeline(false), "GROCERY_WORKBOOK")

	workbook := noSource
	workbook.WorkbookPath = "groceries.xlsx"
	assert.NoError(t, workbook.ValidatePipeline(false))
}
