package main

import (
	"net"
	"strconv"
	"syscall"
	"testing"

	"gatepass/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppMode:     "dev",
		StaticDir:   t.TempDir(),
		BodyLimitMB: 1,
		Storage:     config.StorageConfig{Driver: config.StorageMemory},
		JWT:         config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
		Auth:        config.AuthConfig{PasswordHashing: config.PasswordPlain},
	}
}

func TestRun_PortInUseReturnsError(t *testing.T) {
	busy, err := net.Listen("tcp4", "0.0.0.0:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig(t)
	cfg.Port = strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)
	cfg.Backup = config.BackupConfig{Schedule: "@every 1h", Dir: t.TempDir()}

	err = run(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
	assert.Contains(t, err.Error(), "already in use")
}

func TestRun_InvalidBackupSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backup = config.BackupConfig{Schedule: "not a schedule", Dir: t.TempDir()}

	err := run(cfg)

	assert.ErrorContains(t, err, "failed to start backups")
}
