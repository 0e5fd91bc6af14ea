package email

import (
	"fmt"
	"html"
)

// contactTemplate pairs the subject and body format for one contact reason.
// Body formats take (name, email, phone, message), all pre-escaped.
type contactTemplate struct {
	subject string
	body    string
}

const (
	ReasonPrayerRequest = "prayer_request"
	ReasonAskQuestion   = "ask_question"
	ReasonGetInvolved   = "get_involved"
)

var contactTemplates = map[string]contactTemplate{
	ReasonPrayerRequest: {
		subject: "New Prayer Request from %s",
		body: `<h2>Prayer Request</h2>
<p><strong>From:</strong> %s (%s, %s)</p>
<p>%s</p>`,
	},
	ReasonAskQuestion: {
		subject: "New Question from %s",
		body: `<h2>Question</h2>
<p><strong>From:</strong> %s (%s, %s)</p>
<p>%s</p>`,
	},
	ReasonGetInvolved: {
		subject: "%s wants to get involved",
		body: `<h2>Get Involved</h2>
<p><strong>From:</strong> %s (%s, %s)</p>
<p>%s</p>`,
	},
}

// defaultContactTemplate is the catch-all for unrecognized reason tags.
var defaultContactTemplate = contactTemplate{
	subject: "New Contact Form Message from %s",
	body: `<h2>Contact Form Message</h2>
<p><strong>From:</strong> %s (%s, %s)</p>
<p>%s</p>`,
}

func contactMessage(msg ContactMessage) (subject, body string) {
	tmpl, ok := contactTemplates[msg.Reason]
	if !ok {
		tmpl = defaultContactTemplate
	}

	name := html.EscapeString(msg.Name)
	subject = fmt.Sprintf(tmpl.subject, name)
	body = fmt.Sprintf(tmpl.body,
		name,
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Phone),
		html.EscapeString(msg.Message),
	)
	return subject, body
}

func confirmationMessage(firstName string, year int) (subject, body string) {
	subject = fmt.Sprintf("Registration Confirmed — SHC %d", year)
	body = fmt.Sprintf(`<h2>You're registered!</h2>
<p>Hi %s,</p>
<p>Your registration for SHC %d has been received. We look forward to seeing you.</p>
<p>If you have any questions, just reply to this email.</p>`,
		html.EscapeString(firstName), year)
	return subject, body
}
