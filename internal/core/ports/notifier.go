package ports

import "context"

// WelcomeMessage is the data needed to greet a newly registered user.
type WelcomeMessage struct {
	UserID     string
	Email      string
	Name       string
	ProfileURL string
}

// WelcomeNotifier schedules a welcome message. It must not block the caller
// and has no error result: delivery is best effort.
type WelcomeNotifier interface {
	NotifyWelcome(msg WelcomeMessage)
}

// Mailer delivers a welcome message.
type Mailer interface {
	SendWelcome(ctx context.Context, msg WelcomeMessage) error
}
