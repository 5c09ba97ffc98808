package repository

import "kbtassist/internal/domain"

// Models returns every persisted type in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&userModel{},
		&domain.ContractorProfile{},
		&domain.ContractorInvitation{},
		&propertyModel{},
		&domain.PropertyTenant{},
		&domain.InventoryItem{},
		&jobModel{},
		&jobCommentModel{},
		&invoiceModel{},
		&domain.RentPayment{},
		&domain.CheckoutSession{},
		&noticeModel{},
		&domain.Document{},
		&domain.Message{},
	}
}
