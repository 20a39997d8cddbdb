package reminder

// Permission is the outcome of asking the user whether notifications
// may be shown.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Notifier delivers a reminder to the user. Delivery is best-effort:
// implementations absorb their own failures, and the schedulers ignore
// the returned error beyond dropping it.
type Notifier interface {
	Notify(title, body string) error
}

// PermissionRequester is implemented by notifiers that need user
// consent before delivering. Callers fall back to an alert-style
// notifier when permission is not granted.
type PermissionRequester interface {
	RequestPermission() Permission
}
