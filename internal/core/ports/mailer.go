package ports

import "context"

// Mailer is the outbound mail collaborator: a recipient, a subject, a body,
// and a success/failure report. Delivery details live behind it.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailJob is a queued outbound message.
type MailJob struct {
	To      string
	Subject string
	Body    string
}

// MailDispatcher accepts mail for asynchronous, best-effort delivery.
// Enqueue never blocks the caller on delivery.
type MailDispatcher interface {
	Enqueue(job MailJob)
}
