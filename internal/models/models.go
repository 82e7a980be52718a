package models

// All lists every model for migrations and schema inspection
func All() []interface{} {
	return []interface{}{
		&Simulation{},
		&Volume{},
		&Source{},
		&Actor{},
		&Run{},
	}
}
