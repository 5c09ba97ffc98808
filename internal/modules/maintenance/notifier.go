package maintenance

import (
	"context"
	"fmt"

	"kbtassist/internal/domain"
	"kbtassist/internal/pkg/mailer"
)

// MailNotifier emails the people who need to act on a job: the manager who
// looks after the property when a job comes in, and the reporter when the
// status moves.
type MailNotifier struct {
	mailer     mailer.Mailer
	users      UserReader
	properties PropertyReader
}

func NewMailNotifier(m mailer.Mailer, users UserReader, properties PropertyReader) *MailNotifier {
	return &MailNotifier{mailer: m, users: users, properties: properties}
}

func (n *MailNotifier) NotifyJobReported(ctx context.Context, job *domain.MaintenanceJob) error {
	prop, err := n.properties.GetByID(ctx, job.PropertyID)
	if err != nil {
		return err
	}
	manager, err := n.users.GetByID(ctx, prop.AddedByID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New maintenance job at %s", prop.Address)
	body := fmt.Sprintf("<p>%s</p><p>%s</p><p>Priority: %s</p>", job.Title, job.Description, job.Priority)
	return n.mailer.Send(ctx, manager.Email, subject, body)
}

func (n *MailNotifier) NotifyJobStatusChanged(ctx context.Context, job *domain.MaintenanceJob, previous domain.JobStatus) error {
	reporter, err := n.users.GetByID(ctx, job.ReportedByID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Maintenance job update: %s", job.Title)
	body := fmt.Sprintf("<p>Status changed from %s to %s.</p>", previous, job.Status)
	return n.mailer.Send(ctx, reporter.Email, subject, body)
}
