package maintenance

import (
	"context"
	"errors"
	"strings"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	jobs       JobRepository
	properties PropertyReader
	users      UserReader
	notifs     Notifier
}

func NewService(jobs JobRepository, properties PropertyReader, users UserReader, notifs Notifier) *Service {
	return &Service{jobs: jobs, properties: properties, users: users, notifs: notifs}
}

var validJobTypes = map[domain.JobType]bool{
	domain.JobTypePlumbing:    true,
	domain.JobTypeElectrical:  true,
	domain.JobTypeHeating:     true,
	domain.JobTypeAppliance:   true,
	domain.JobTypeStructural:  true,
	domain.JobTypePestControl: true,
	domain.JobTypeGardening:   true,
	domain.JobTypeOther:       true,
}

var validPriorities = map[domain.JobPriority]bool{
	domain.PriorityLow:    true,
	domain.PriorityMedium: true,
	domain.PriorityHigh:   true,
	domain.PriorityUrgent: true,
}

func (s *Service) ReportJob(ctx context.Context, actor domain.Principal, req ReportJobRequest) (*domain.MaintenanceJob, error) {
	property, tenantIDs, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, property, tenantIDs) {
		return nil, ErrForbidden
	}

	jobType := domain.JobType(strings.ToLower(strings.TrimSpace(req.JobType)))
	if jobType == "" {
		jobType = domain.JobTypeOther
	}
	if !validJobTypes[jobType] {
		return nil, ErrValidation
	}

	priority := domain.JobPriority(strings.ToLower(strings.TrimSpace(req.Priority)))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !validPriorities[priority] {
		return nil, ErrValidation
	}

	job := &domain.MaintenanceJob{
		PropertyID:   req.PropertyID,
		ReportedByID: actor.UserID,
		Title:        req.Title,
		Description:  req.Description,
		JobType:      jobType,
		Priority:     priority,
		Status:       domain.JobReported,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyJobReported(ctx, job)
	}
	return job, nil
}

// Transition moves a job to the next status. The lifecycle table decides which
// edges exist; the actor's relation to the job decides which edges they may
// take. The reporter may only acknowledge or cancel their own job; property
// managers may take any edge; the assigned contractor may take the edges of
// the quote and work phases.
func (s *Service) Transition(ctx context.Context, actor domain.Principal, jobID int64, next domain.JobStatus) (*domain.MaintenanceJob, error) {
	if !domain.ValidJobStatus(next) {
		return nil, ErrValidation
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, job.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessJob(actor, job, property, tenantIDs) {
		return nil, ErrForbidden
	}

	if !job.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}
	if !s.actorMayTake(actor, job, property, next) {
		return nil, ErrForbidden
	}

	var completedAt *time.Time
	if next == domain.JobCompleted {
		now := time.Now()
		completedAt = &now
	}
	if err := s.jobs.UpdateStatus(ctx, jobID, next, completedAt); err != nil {
		return nil, err
	}

	previous := job.Status
	job.Status = next
	job.CompletedAt = completedAt
	if s.notifs != nil {
		_ = s.notifs.NotifyJobStatusChanged(ctx, job, previous)
	}
	return job, nil
}

func (s *Service) actorMayTake(actor domain.Principal, job *domain.MaintenanceJob, property *domain.Property, next domain.JobStatus) bool {
	if domain.CanManageProperty(actor, property) {
		return true
	}

	if job.ReportedByID == actor.UserID {
		return next == domain.JobAcknowledged || next == domain.JobCancelled
	}

	if job.AssignedToID != nil && *job.AssignedToID == actor.UserID {
		switch next {
		case domain.JobQuoteSubmitted, domain.JobInProgress, domain.JobCompleted:
			return true
		}
	}
	return false
}

// AssignContractor puts a contractor on the job and advances it to
// PENDING_QUOTE. Allowed from REPORTED or ACKNOWLEDGED only.
func (s *Service) AssignContractor(ctx context.Context, actor domain.Principal, jobID, contractorID int64) (*domain.MaintenanceJob, error) {
	if !domain.CanAssignContractors(actor.Role) {
		return nil, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if job.Status != domain.JobReported && job.Status != domain.JobAcknowledged {
		return nil, ErrInvalidTransition
	}

	contractor, err := s.users.GetByID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if contractor.Role != domain.RoleContractor {
		return nil, ErrNotAContractor
	}

	if err := s.jobs.Assign(ctx, jobID, contractorID, domain.JobPendingQuote); err != nil {
		return nil, err
	}

	job.AssignedToID = &contractorID
	job.Status = domain.JobPendingQuote
	return job, nil
}

func (s *Service) GetJob(ctx context.Context, actor domain.Principal, jobID int64) (*domain.MaintenanceJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, job.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessJob(actor, job, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return job, nil
}

func (s *Service) ListJobs(ctx context.Context, actor domain.Principal) ([]domain.MaintenanceJob, error) {
	return s.jobs.ListForUser(ctx, actor.UserID)
}

func (s *Service) ListJobsByProperty(ctx context.Context, actor domain.Principal, propertyID int64) ([]domain.MaintenanceJob, error) {
	property, tenantIDs, err := s.loadProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return s.jobs.ListByProperty(ctx, propertyID)
}

func (s *Service) AddComment(ctx context.Context, actor domain.Principal, jobID int64, content string) (*domain.JobComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrValidation
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, job.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessJob(actor, job, property, tenantIDs) {
		return nil, ErrForbidden
	}

	comment := &domain.JobComment{
		JobID:    jobID,
		AuthorID: actor.UserID,
		Content:  content,
	}
	if err := s.jobs.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, actor domain.Principal, jobID int64) ([]domain.JobComment, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	property, tenantIDs, err := s.loadProperty(ctx, job.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessJob(actor, job, property, tenantIDs) {
		return nil, ErrForbidden
	}
	return s.jobs.ListComments(ctx, jobID)
}

func (s *Service) loadProperty(ctx context.Context, propertyID int64) (*domain.Property, []int64, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	tenantIDs, err := s.properties.TenantIDs(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	return property, tenantIDs, nil
}
