package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAdminToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9092", cfg.ListenAddr)
	require.Equal(t, "secret", cfg.AdminToken)
	require.Equal(t, "guestbook", cfg.MinIO.Bucket)
	require.Equal(t, "export", cfg.Export.OutputDir)
	require.Empty(t, cfg.Export.ExcludedIDs)
}

func TestLoadExcludedIDs(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("EXPORT_EXCLUDE_IDS", "1, 2,3")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, cfg.Export.ExcludedIDs)
}

func TestLoadRejectsBadExcludedIDs(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("EXPORT_EXCLUDE_IDS", "1,abc")

	_, err := Load()
	require.Error(t, err)
}
