package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupClient(t *testing.T) *Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY AUTOINCREMENT, body TEXT NOT NULL)`).Error)
	return NewWithGorm(gdb)
}

func countNotes(t *testing.T, client *Client) int64 {
	t.Helper()
	var count int64
	require.NoError(t, client.Gorm().Table("notes").Count(&count).Error)
	return count
}

func TestWithTxCommits(t *testing.T) {
	client := setupClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO notes (body) VALUES ('kept')`).Error
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countNotes(t, client))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := setupClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO notes (body) VALUES ('discarded')`).Error; err != nil {
			return err
		}
		return fmt.Errorf("forced failure")
	})
	require.Error(t, err)
	assert.Zero(t, countNotes(t, client))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	client := setupClient(t)

	require.Panics(t, func() {
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			if err := tx.Exec(`INSERT INTO notes (body) VALUES ('discarded')`).Error; err != nil {
				return err
			}
			panic("boom")
		})
	})
	assert.Zero(t, countNotes(t, client))
}

func TestPing(t *testing.T) {
	client := setupClient(t)
	require.NoError(t, client.Ping(context.Background()))
}
