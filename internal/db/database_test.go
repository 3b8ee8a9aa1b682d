package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	gdb, err := Open(context.Background(), config.Config{Storage: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(gdb))
	// second run is a no-op
	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"menu_items", "customers", "orders", "order_items", "reservations", "bills"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
	assert.True(t, gdb.Migrator().HasIndex(&models.Bill{}, "idx_bills_bill_number"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Storage: "mysql"})
	require.Error(t, err)
}

func TestOpenPostgresNeedsURL(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Storage: config.DriverPostgres})
	require.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(""))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "restaurant.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", sqliteDSN("restaurant.db"))
}
