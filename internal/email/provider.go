package email

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Provider sends notification emails. Delivery failures are reported to the
// caller, which logs them; moderation state transitions never depend on the
// outcome.
type Provider interface {
	Send(msg *Message) error
}
