package mailer

import (
	"fmt"
	"time"

	"pulse-crm-backend/internal/store/models"
)

// WelcomeSubject returns the signup email subject for the given role.
func WelcomeSubject(role string) string {
	if role == models.RoleAdmin {
		return "Welcome to Pulse CRM - Your Workspace is Ready"
	}
	return "You have joined a Workspace on Pulse CRM"
}

// WelcomeBody renders the signup email. Admins get a prompt to share the
// organization id with their team; members get a confirmation.
func WelcomeBody(name, orgID, role, email string) string {
	var hint string
	if role == models.RoleAdmin {
		hint = "<p>Share this <strong>Organization ID</strong> with your team so they can join your workspace.</p>"
	} else {
		hint = "<p>You have been added to the workspace. Contact your admin if you have questions.</p>"
	}

	return fmt.Sprintf(`
      <div style="font-family: sans-serif; padding: 20px; color: #333;">
        <h1 style="color: #4F46E5;">Welcome, %s!</h1>
        <p>You have successfully registered for Pulse CRM.</p>

        <div style="background: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
          <p><strong>Organization ID:</strong> <code style="font-size: 1.2em; color: #d946ef;">%s</code></p>
          <p><strong>Your Role:</strong> %s</p>
          <p><strong>Username:</strong> %s</p>
        </div>

        %s

        <p>Best,<br>The Pulse Team</p>
      </div>`, name, orgID, role, email, hint)
}

// LoginAlertSubject is the subject of the security alert sent on login.
const LoginAlertSubject = "Security Alert: New Login"

// LoginAlertBody renders the login security alert.
func LoginAlertBody(name string, at time.Time) string {
	return fmt.Sprintf(`
      <h3>New Login Detected</h3>
      <p>Hello %s,</p>
      <p>We detected a new login to your account.</p>
      <p><strong>Time:</strong> %s</p>
      <p>If this was you, you can ignore this email.</p>`, name, at.Format(time.RFC1123))
}
