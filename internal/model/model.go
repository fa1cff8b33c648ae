package model

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&MasterData{},
		&ProductionRecord{},
		&DispatchRecord{},
		&StockRecord{},
		&WireRecord{},
		&EquipmentRecord{},
		&SystemConfig{},
		&Notification{},
		&SheetLink{},
		&PushSubscription{},
	}
}
