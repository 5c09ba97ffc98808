package domain

import "time"

type Property struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address" validate:"required"`
	Postcode   string    `json:"postcode" validate:"required"`
	RentAmount float64   `json:"rent_amount"`
	Bedrooms   int       `json:"bedrooms"`
	Bathrooms  int       `json:"bathrooms"`
	LandlordID int64     `json:"landlord_id"`
	AddedByID  int64     `json:"added_by_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Tenants []User `json:"tenants,omitempty" gorm:"-"`
}

// PropertyTenant is the tenancy join row: one row per tenant living at a property.
type PropertyTenant struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	PropertyID int64     `gorm:"index:idx_property_tenant,unique;not null" json:"property_id"`
	TenantID   int64     `gorm:"index:idx_property_tenant,unique;not null" json:"tenant_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PropertyTenant) TableName() string { return "property_tenants" }

type InventoryItem struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	PropertyID int64     `gorm:"index;not null" json:"property_id"`
	Name       string    `gorm:"not null" json:"name"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit,omitempty"`
	Location   string    `json:"location,omitempty"`
	AddedByID  int64     `json:"added_by_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (InventoryItem) TableName() string { return "inventory_items" }
