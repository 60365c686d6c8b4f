package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"showcase/internal/model"
)

// SchemaInspector reads table and column metadata from the live database.
// Nothing is cached; every call goes back to the catalog.
type SchemaInspector struct {
	db *gorm.DB
}

func NewSchemaInspector(db *gorm.DB) *SchemaInspector {
	return &SchemaInspector{db: db}
}

func (i *SchemaInspector) Describe(ctx context.Context) ([]model.TableSchema, error) {
	migrator := i.db.WithContext(ctx).Migrator()

	tables, err := migrator.GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables failed: %w", err)
	}
	sort.Strings(tables)

	schemas := make([]model.TableSchema, 0, len(tables))
	for _, table := range tables {
		columnTypes, err := migrator.ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s failed: %w", table, err)
		}

		columns := make([]model.Column, 0, len(columnTypes))
		for _, ct := range columnTypes {
			nullable, ok := ct.Nullable()
			if !ok {
				nullable = true
			}
			primaryKey, _ := ct.PrimaryKey()
			columns = append(columns, model.Column{
				Name:       ct.Name(),
				Type:       ct.DatabaseTypeName(),
				Nullable:   nullable && !primaryKey,
				PrimaryKey: primaryKey,
			})
		}
		schemas = append(schemas, model.TableSchema{Name: table, Columns: columns})
	}
	return schemas, nil
}
