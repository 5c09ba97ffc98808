package repository

import (
	"context"
	"time"

	"kbtassist/internal/domain"

	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

type jobModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	PropertyID   int64      `gorm:"column:property_id;index"`
	ReportedByID int64      `gorm:"column:reported_by_id;index"`
	AssignedToID *int64     `gorm:"column:assigned_to_id;index"`
	Title        string     `gorm:"column:title"`
	Description  string     `gorm:"column:description"`
	JobType      string     `gorm:"column:job_type"`
	Priority     string     `gorm:"column:priority"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
}

func (jobModel) TableName() string { return "maintenance_jobs" }

type jobCommentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	JobID     int64     `gorm:"column:job_id;index"`
	AuthorID  int64     `gorm:"column:author_id"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (jobCommentModel) TableName() string { return "job_comments" }

func toDomainJob(m jobModel) *domain.MaintenanceJob {
	return &domain.MaintenanceJob{
		ID:           m.ID,
		PropertyID:   m.PropertyID,
		ReportedByID: m.ReportedByID,
		AssignedToID: m.AssignedToID,
		Title:        m.Title,
		Description:  m.Description,
		JobType:      domain.JobType(m.JobType),
		Priority:     domain.JobPriority(m.Priority),
		Status:       domain.JobStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CompletedAt:  m.CompletedAt,
	}
}

func toJobModel(j *domain.MaintenanceJob) jobModel {
	return jobModel{
		ID:           j.ID,
		PropertyID:   j.PropertyID,
		ReportedByID: j.ReportedByID,
		AssignedToID: j.AssignedToID,
		Title:        j.Title,
		Description:  j.Description,
		JobType:      string(j.JobType),
		Priority:     string(j.Priority),
		Status:       string(j.Status),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		CompletedAt:  j.CompletedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.MaintenanceJob) error {
	m := toJobModel(j)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*j = *toDomainJob(m)
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceJob, error) {
	var m jobModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainJob(m), nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": string(status)}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	res := r.db.WithContext(ctx).Model(&jobModel{}).Where("id = ?", jobID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *JobRepository) Assign(ctx context.Context, jobID, contractorID int64, status domain.JobStatus) error {
	res := r.db.WithContext(ctx).Model(&jobModel{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"assigned_to_id": contractorID,
		"status":         string(status),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns jobs the user reported, is assigned to, or that belong
// to a property the user manages, owns or lives at. Newest first.
func (r *JobRepository) ListForUser(ctx context.Context, userID int64) ([]domain.MaintenanceJob, error) {
	managed := r.db.Table("properties").Select("id").Where("added_by_id = ? OR landlord_id = ?", userID, userID)
	tenancy := r.db.Table("property_tenants").Select("property_id").Where("tenant_id = ?", userID)

	var models []jobModel
	tx := r.db.WithContext(ctx).
		Where("reported_by_id = ? OR assigned_to_id = ? OR property_id IN (?) OR property_id IN (?)",
			userID, userID, managed, tenancy).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.MaintenanceJob, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainJob(m))
	}
	return out, nil
}

func (r *JobRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.MaintenanceJob, error) {
	var models []jobModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.MaintenanceJob, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainJob(m))
	}
	return out, nil
}

func (r *JobRepository) ListByAssignee(ctx context.Context, contractorID int64) ([]domain.MaintenanceJob, error) {
	var models []jobModel
	tx := r.db.WithContext(ctx).
		Where("assigned_to_id = ?", contractorID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.MaintenanceJob, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainJob(m))
	}
	return out, nil
}

func (r *JobRepository) AddComment(ctx context.Context, c *domain.JobComment) error {
	m := jobCommentModel{
		JobID:    c.JobID,
		AuthorID: c.AuthorID,
		Content:  c.Content,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

// ListComments returns the job's comments in creation order ascending. Each
// call re-reads from the store, so the sequence is restartable.
func (r *JobRepository) ListComments(ctx context.Context, jobID int64) ([]domain.JobComment, error) {
	var models []jobCommentModel
	tx := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC, id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.JobComment, 0, len(models))
	for _, m := range models {
		out = append(out, domain.JobComment{
			ID:        m.ID,
			JobID:     m.JobID,
			AuthorID:  m.AuthorID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
