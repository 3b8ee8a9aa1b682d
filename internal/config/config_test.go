package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStorage(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		url      string
		want     StorageDriver
		wantErr  bool
	}{
		{name: "no url falls back to sqlite", want: DriverSQLite},
		{name: "postgres scheme", url: "postgres://u:p@db:5432/pos", want: DriverPostgres},
		{name: "postgresql scheme", url: "postgresql://u:p@db/pos", want: DriverPostgres},
		{name: "unrecognized scheme", url: "mysql://u:p@db/pos", want: DriverSQLite},
		{name: "explicit sqlite ignores url", explicit: "sqlite", url: "postgres://db/pos", want: DriverSQLite},
		{name: "explicit postgres", explicit: "Postgres", url: "host=db user=u", want: DriverPostgres},
		{name: "explicit postgres without url", explicit: "postgres", wantErr: true},
		{name: "unknown driver", explicit: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStorage(tt.explicit, tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEvents(t *testing.T) {
	got, err := ResolveEvents("")
	require.NoError(t, err)
	assert.Equal(t, EventsNone, got)

	got, err = ResolveEvents("KAFKA")
	require.NoError(t, err)
	assert.Equal(t, EventsKafka, got)

	_, err = ResolveEvents("nats")
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "STORAGE_DRIVER", "EVENTS_DRIVER", "SQLITE_PATH", "IDEMPOTENCY_TTL", "DEFAULT_TAX_RATE", "EVENTS_QUEUE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.Storage)
	assert.Equal(t, "restaurant.db", cfg.SQLitePath)
	assert.Equal(t, EventsNone, cfg.Events)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, StandardTaxRate, cfg.DefaultTaxRate)
	assert.Equal(t, 1024, cfg.EventsQueueSize)
}

func TestLoad_ZeroTaxRateIsKept(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("EVENTS_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DEFAULT_TAX_RATE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.DefaultTaxRate)
}

func TestLoad_KafkaRequiresBrokers(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("EVENTS_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "")

	_, err := Load()
	require.Error(t, err)
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}
