package mailer

import (
	"fmt"
	"html"
)

// RenderNotificationHTML builds the minimal HTML body the notification
// worker emails. Plain text remains the primary body.
func RenderNotificationHTML(title, message string) string {
	return fmt.Sprintf(
		"<html><body><h2>%s</h2><p>%s</p></body></html>",
		html.EscapeString(title),
		html.EscapeString(message),
	)
}
