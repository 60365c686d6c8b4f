package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/model"
	"showcase/internal/platform/database"
)

type gadget struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:40;not null"`
	Notes *string
}

func TestDescribeReadsLiveSchema(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite", ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db, &gadget{}))

	inspector := NewSchemaInspector(db)
	tables, err := inspector.Describe(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "gadgets", tables[0].Name)

	columns := map[string]model.Column{}
	var order []string
	for _, col := range tables[0].Columns {
		columns[col.Name] = col
		order = append(order, col.Name)
	}
	assert.Equal(t, []string{"id", "name", "notes"}, order)
	assert.True(t, columns["id"].PrimaryKey)
	assert.False(t, columns["name"].Nullable)
	assert.True(t, columns["notes"].Nullable)

	require.NoError(t, database.Migrate(db, &model.ActivityEvent{}))
	tables, err = inspector.Describe(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "activity_events", tables[0].Name)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, ClampLimit(0, 20))
	assert.Equal(t, 1, ClampLimit(-3, 20))
	assert.Equal(t, 7, ClampLimit(7, 20))
	assert.Equal(t, 20, ClampLimit(99, 20))
}
