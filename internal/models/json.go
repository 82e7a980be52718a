package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a typed wrapper around gorm.io/datatypes.JSONType to allow for custom data type mapping
type JSON[T any] struct {
	datatypes.JSONType[T]
}

// NewJSON wraps v for storage in a JSON column
func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{datatypes.NewJSONType(v)}
}

// Value promotes the embedded JSONType's Value method
func (j JSON[T]) Value() (driver.Value, error) {
	return j.JSONType.Value()
}

// Scan promotes the embedded JSONType's Scan method
func (j *JSON[T]) Scan(value interface{}) error {
	return j.JSONType.Scan(value)
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (JSON[T]) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
