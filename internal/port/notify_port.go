package port

// Notifier surfaces user-visible messages, e.g. mutation failures.
type Notifier interface {
	Notify(message string)
}

// NoopNotifier is a safe default when callers do not need notifications.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}
