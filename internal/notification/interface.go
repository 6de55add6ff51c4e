package notification

// UseCase consumes notification and admin report topics.
type UseCase interface {
	// Watch subscribes to the user's notifications. Unread counters and
	// incoming calls are republished on the event bus.
	Watch(userID int64) error
	Unwatch(userID int64)
	OnNotification(fn Handler)

	WatchReports(fn ReportHandler) error
	UnwatchReports()
}
