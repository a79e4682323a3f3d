package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DSN_URL", "")

	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, int64(5<<20), cfg.PhotoMaxBytes)
	assert.Equal(t, 1440, cfg.JWTExpirationMinutes)
	assert.Equal(t, "/uploads", cfg.StoragePublicBaseURL)
	assert.False(t, cfg.CandidateEmailRequired)
}

func TestParseConfigDatabaseURLFallback(t *testing.T) {
	t.Setenv("DSN_URL", "")
	t.Setenv("DATABASE_URL", "postgres://campaign@db:5432/election")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://campaign@db:5432/election", cfg.DSNURL)
}

func TestParseConfigExplicitDSNWins(t *testing.T) {
	t.Setenv("DSN_URL", "campaign:secret@tcp(db:3306)/election")
	t.Setenv("DATABASE_URL", "postgres://ignored")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, "campaign:secret@tcp(db:3306)/election", cfg.DSNURL)
}

func TestParseConfigRejectsMalformedNumber(t *testing.T) {
	t.Setenv("PHOTO_MAX_BYTES", "five megabytes")

	_, err := ParseConfig()
	assert.Error(t, err)
}
