package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/pkg/config"
)

func TestPoolConfigFor_AplicaLimites(t *testing.T) {
	cfg := config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "app", DBName: "conciliacion", SSLMode: "disable",
		MaxConns: 8, MinConns: 2, StatementTimeout: 3 * time.Second,
	}
	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)

	assert.EqualValues(t, 8, pc.MaxConns)
	assert.EqualValues(t, 2, pc.MinConns)
	assert.Equal(t, "3000", pc.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "conciliacion", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFor_MinMayorQueMaxSeIgnora(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://app@127.0.0.1:5432/c", MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 2, pc.MaxConns)
	assert.EqualValues(t, 0, pc.MinConns)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestDSNWithIPv4(t *testing.T) {
	assert.Equal(t, "postgres://app@10.0.0.5:5432/c", dsnWithIPv4("postgres://app@10.0.0.5/c"))
	// IPv6 literal: se deja igual
	assert.Equal(t, "postgres://app@[::1]:5432/c", dsnWithIPv4("postgres://app@[::1]:5432/c"))
	assert.Equal(t, "host=db user=app", dsnWithIPv4("host=db user=app"))
}
