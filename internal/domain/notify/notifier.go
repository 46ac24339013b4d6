// Package notify defines the outbound admin notification contract.
package notify

// Notifier delivers short operational messages to the administrator.
type Notifier interface {
	NotifyAdmin(text string) error
}
