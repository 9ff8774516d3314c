package domain

// Principal is the signed-in identity reported by the identity provider.
type Principal struct {
	UserID string
	Email  string
}

// IntentAction is a deferred user action kind.
type IntentAction string

const IntentAddToCart IntentAction = "add-to-cart"

// PendingIntent captures an action requested before a forced login
// redirect. It is consumed exactly once after the next successful
// authentication and is not persisted across restarts.
type PendingIntent struct {
	Action  IntentAction
	Product Product
}
