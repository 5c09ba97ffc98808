package property

type CreatePropertyRequest struct {
	Name       string  `json:"name"`
	Address    string  `json:"address" binding:"required"`
	Postcode   string  `json:"postcode" binding:"required"`
	RentAmount float64 `json:"rent_amount"`
	Bedrooms   int     `json:"bedrooms"`
	Bathrooms  int     `json:"bathrooms"`
	LandlordID int64   `json:"landlord_id"`
}

type UpdatePropertyRequest struct {
	Name       *string  `json:"name,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Postcode   *string  `json:"postcode,omitempty"`
	RentAmount *float64 `json:"rent_amount,omitempty"`
	Bedrooms   *int     `json:"bedrooms,omitempty"`
	Bathrooms  *int     `json:"bathrooms,omitempty"`
}

type AddTenantRequest struct {
	TenantID int64 `json:"tenant_id" binding:"required"`
}

type CreateInventoryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
}

type UpdateInventoryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
}
