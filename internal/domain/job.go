package domain

import "time"

type JobStatus string

const (
	JobReported         JobStatus = "reported"
	JobAcknowledged     JobStatus = "acknowledged"
	JobPendingQuote     JobStatus = "pending_quote"
	JobQuoteSubmitted   JobStatus = "quote_submitted"
	JobAwaitingApproval JobStatus = "awaiting_approval"
	JobInProgress       JobStatus = "in_progress"
	JobCompleted        JobStatus = "completed"
	JobCancelled        JobStatus = "cancelled"
)

type JobType string

const (
	JobTypePlumbing    JobType = "plumbing"
	JobTypeElectrical  JobType = "electrical"
	JobTypeHeating     JobType = "heating"
	JobTypeAppliance   JobType = "appliance"
	JobTypeStructural  JobType = "structural"
	JobTypePestControl JobType = "pest_control"
	JobTypeGardening   JobType = "gardening"
	JobTypeOther       JobType = "other"
)

type JobPriority string

const (
	PriorityLow    JobPriority = "low"
	PriorityMedium JobPriority = "medium"
	PriorityHigh   JobPriority = "high"
	PriorityUrgent JobPriority = "urgent"
)

// jobTransitions is the authoritative lifecycle table. A status not present as
// a key is terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobReported:         {JobAcknowledged, JobCancelled},
	JobAcknowledged:     {JobPendingQuote, JobCancelled},
	JobPendingQuote:     {JobQuoteSubmitted, JobCancelled},
	JobQuoteSubmitted:   {JobAwaitingApproval, JobCancelled},
	JobAwaitingApproval: {JobInProgress, JobCancelled},
	JobInProgress:       {JobCompleted, JobCancelled},
}

// CanTransition reports whether next is directly reachable from current.
func (current JobStatus) CanTransition(next JobStatus) bool {
	for _, s := range jobTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (current JobStatus) Terminal() bool {
	return len(jobTransitions[current]) == 0
}

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobReported, JobAcknowledged, JobPendingQuote, JobQuoteSubmitted,
		JobAwaitingApproval, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

type MaintenanceJob struct {
	ID           int64       `json:"id"`
	PropertyID   int64       `json:"property_id" validate:"required"`
	ReportedByID int64       `json:"reported_by_id" validate:"required"`
	AssignedToID *int64      `json:"assigned_to_id,omitempty"`
	Title        string      `json:"title" validate:"required"`
	Description  string      `json:"description" validate:"required"`
	JobType      JobType     `json:"job_type"`
	Priority     JobPriority `json:"priority"`
	Status       JobStatus   `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}

type JobComment struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
