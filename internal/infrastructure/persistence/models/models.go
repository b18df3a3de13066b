package models

// All returns every model owned by this service, in creation order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&RepairModel{},
		&RepairImageModel{},
		&CompletionImageModel{},
		&StatusHistoryModel{},
		&SystemSettingModel{},
	}
}
