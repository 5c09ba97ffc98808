package maintenance

import (
	"context"
	"time"

	"kbtassist/internal/domain"
)

type JobRepository interface {
	Create(ctx context.Context, j *domain.MaintenanceJob) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceJob, error)
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus, completedAt *time.Time) error
	Assign(ctx context.Context, jobID, contractorID int64, status domain.JobStatus) error
	ListForUser(ctx context.Context, userID int64) ([]domain.MaintenanceJob, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.MaintenanceJob, error)
	AddComment(ctx context.Context, c *domain.JobComment) error
	ListComments(ctx context.Context, jobID int64) ([]domain.JobComment, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	TenantIDs(ctx context.Context, propertyID int64) ([]int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier pushes job lifecycle events out of band. Implementations must not
// block the request path.
type Notifier interface {
	NotifyJobReported(ctx context.Context, job *domain.MaintenanceJob) error
	NotifyJobStatusChanged(ctx context.Context, job *domain.MaintenanceJob, previous domain.JobStatus) error
}
