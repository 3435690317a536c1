// Package models contains the gorm model definitions for the dbGroup and dbInputs tables.
package models

// All returns every model that has to be migrated.
func All() []any {
	return []any{
		&Group{},
		&Input{},
	}
}
