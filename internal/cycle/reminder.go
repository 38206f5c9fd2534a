package cycle

type ReminderKind string

const (
	ReminderUpcoming ReminderKind = "upcoming"
	ReminderOverdue  ReminderKind = "overdue"
)

// UpcomingReminderDays is how many days ahead of the predicted start the
// upcoming reminder begins.
const UpcomingReminderDays = 2

func ReminderFor(status Status) (ReminderKind, bool) {
	if status.DaysUntilNext == nil {
		return "", false
	}
	days := *status.DaysUntilNext
	switch {
	case days < 0:
		return ReminderOverdue, true
	case days <= UpcomingReminderDays:
		return ReminderUpcoming, true
	default:
		return "", false
	}
}
