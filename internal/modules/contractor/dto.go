package contractor

type AddContractorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty" binding:"required"`
	Location  string `json:"location"`
}

type InviteRequest struct {
	ContractorID int64 `json:"contractor_id" binding:"required"`
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}
