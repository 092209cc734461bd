package email

import (
	"fmt"
	"time"
)

// AppointmentReminderBody renders the reminder sent the day before a visit.
func AppointmentReminderBody(doctorName, specialty string, at time.Time) string {
	return fmt.Sprintf(
		`<html><body>
<p>This is a reminder of your upcoming appointment.</p>
<p><b>%s</b> (%s)<br>%s</p>
<p>If you cannot attend, please contact the clinic.</p>
</body></html>`,
		doctorName,
		specialty,
		at.Format("Monday, 2 January 2006 at 15:04"),
	)
}
