package notify

import (
	"fmt"
	"html"
	"strings"
)

// WelcomeEmail builds the registration welcome message with login
// instructions. The temporary password travels only through this email.
func WelcomeEmail(to, fullName, tempPassword, companyID, frontendURL string) Message {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(name))
	b.WriteString("<p>Your account has been created. Sign in with the temporary password below and change it right away.</p>")
	fmt.Fprintf(&b, "<p><strong>Temporary password:</strong> %s</p>", html.EscapeString(tempPassword))
	if companyID != "" {
		fmt.Fprintf(&b, "<p><strong>Company code:</strong> %s</p>", html.EscapeString(companyID))
	}
	fmt.Fprintf(&b, `<p><a href="%s/login">Log in here</a></p>`, frontendURL)

	return Message{
		To:       to,
		Subject:  "Welcome to TalentHub",
		HTML:     b.String(),
		Category: CategoryAuth,
	}
}

// PasswordChangedEmail builds the best-effort password change notice.
func PasswordChangedEmail(to, frontendURL string) Message {
	var b strings.Builder
	b.WriteString("<p>Your password was changed.</p>")
	b.WriteString("<p>If this wasn't you, reset your password immediately.</p>")
	fmt.Fprintf(&b, `<p><a href="%s/login">Log in here</a></p>`, frontendURL)

	return Message{
		To:       to,
		Subject:  "Your password was changed",
		HTML:     b.String(),
		Category: CategoryAlerts,
	}
}
