package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sales-management-api", cfg.App.Name)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "MONGO")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("MONGO_DATABASE", "ventas")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "ventas", cfg.Mongo.Database)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:     AppConfig{Env: "production"},
			HTTP:    HTTPConfig{Port: 8080},
			Storage: StorageConfig{Driver: DriverPostgres},
			JWT:     JWTConfig{Secret: "x"},
		}
	}

	assert.NoError(t, base().Validate())

	c := base()
	c.Storage.Driver = "sqlite"
	assert.ErrorContains(t, c.Validate(), "STORAGE_DRIVER")

	c = base()
	c.JWT.Secret = ""
	assert.ErrorContains(t, c.Validate(), "JWT_SECRET")

	c.App.Env = "development"
	assert.NoError(t, c.Validate())

	c = base()
	c.Seed = SeedConfig{AdminEmail: "admin@example.com", AdminPassword: "corta"}
	assert.ErrorContains(t, c.Validate(), "SEED_ADMIN_PASSWORD")
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/ventas?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
