package model

// All lists every persistence model in migration order.
func All() []any {
	return []any{
		&IdentityModel{},
		&TaskModel{},
	}
}
