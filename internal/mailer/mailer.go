package mailer

import "context"

//go:generate mockgen -source=mailer.go -destination=../mocks/mailer_mock.go -package=mocks

// Mailer is a fire-and-forget notification sink. Delivery failures must
// never fail or roll back the request that triggered them; callers log and
// move on.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
