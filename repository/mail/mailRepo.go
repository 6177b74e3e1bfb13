package mailrepo

import "context"

// Sender delivers a notification. Delivery is at-least-attempted: a
// failed send is logged by the caller and never rolls back the domain
// change that triggered it.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
