package maintenance

type ReportJobRequest struct {
	PropertyID  int64  `json:"property_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	JobType     string `json:"job_type"`
	Priority    string `json:"priority"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignContractorRequest struct {
	ContractorID int64 `json:"contractor_id" binding:"required"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
