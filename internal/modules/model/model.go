package model

// All lists every persisted model in dependency order, parents first.
func All() []any {
	return []any{
		&View{},
		&University{},
		&Column{},
		&Value{},
		&ValueHistory{},
		&CellFormat{},
		&Document{},
		&Application{},
		&Task{},
		&Grade{},
	}
}
