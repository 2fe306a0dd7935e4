// Package templates renders outbound message content. Every function is a
// pure mapping from a lead and a step index to content; nothing here talks
// to the network or the database.
package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/summitview/outreach/internal/entity"
)

type EmailContent struct {
	Subject string
	HTML    string
}

type Renderer struct {
	CompanyName string
	BaseURL     string
}

func NewRenderer(companyName, baseURL string) *Renderer {
	return &Renderer{CompanyName: companyName, BaseURL: baseURL}
}

// smsTemplates is the fallback drip sequence for SMS campaigns whose steps
// carry no literal body. %s slots: first name, company name.
var smsTemplates = []string{
	"Hi %s, thanks for reaching out to %s! We'll be in touch shortly.",
	"Hi %s, just checking in from %s. Still interested in working together?",
	"Hi %s, %s here. We'd love to schedule a quick call whenever suits you.",
	"Hi %s, last note from %s for now. Reply anytime and we'll pick it back up.",
}

type emailStep struct {
	subject string
	body    string
}

var emailTemplates = []emailStep{
	{"Thanks for getting in touch", "<p>Hi %s,</p><p>Thanks for reaching out to %s. We received your inquiry and will get back to you shortly.</p>"},
	{"Following up on your inquiry", "<p>Hi %s,</p><p>Just following up from %s. We'd love to hear more about what you're working on.</p>"},
	{"Let's find a time to talk", "<p>Hi %s,</p><p>%s here. Would a quick intro call work for you this week?</p>"},
	{"Keeping the door open", "<p>Hi %s,</p><p>This is the last scheduled note from %s. Reply any time and we'll pick things back up.</p>"},
}

const optOutInstruction = "Reply STOP to opt out."

// clamp pins step to the last valid index so a campaign edited shorter
// after enrollment never fails a send.
func clamp(step, length int) int {
	if step < 0 {
		return 0
	}
	if step >= length {
		return length - 1
	}
	return step
}

func (r *Renderer) WelcomeSMS(lead *entity.Lead) string {
	return fmt.Sprintf("Hi %s, thanks for contacting %s! We'll get back to you soon. %s",
		firstName(lead), r.CompanyName, optOutInstruction)
}

func (r *Renderer) DripSMS(step int, lead *entity.Lead) string {
	tmpl := smsTemplates[clamp(step, len(smsTemplates))]
	return fmt.Sprintf(tmpl, firstName(lead), r.CompanyName) + " " + optOutInstruction
}

func (r *Renderer) WelcomeEmail(lead *entity.Lead) EmailContent {
	return r.DripEmail(0, lead)
}

func (r *Renderer) DripEmail(step int, lead *entity.Lead) EmailContent {
	t := emailTemplates[clamp(step, len(emailTemplates))]
	body := fmt.Sprintf(t.body, template.HTMLEscapeString(firstName(lead)), template.HTMLEscapeString(r.CompanyName))
	return EmailContent{
		Subject: t.subject,
		HTML:    r.EmailEnvelope(lead, body),
	}
}

var envelopeTmpl = template.Must(template.New("envelope").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto;">
    <h2 style="color: #0b3954;">{{.CompanyName}}</h2>
    {{.Body}}
    <hr style="border: none; border-top: 1px solid #e0e6ed; margin: 24px 0;">
    <p style="font-size: 12px; color: #7b8794;">
      You are receiving this because you contacted {{.CompanyName}}.
      <a href="{{.UnsubscribeURL}}">Unsubscribe</a>
    </p>
  </div>
</body>
</html>`))

// EmailEnvelope wraps body in the shared layout. The unsubscribe link is
// always present and always points at the lead's own email channel.
func (r *Renderer) EmailEnvelope(lead *entity.Lead, body string) string {
	data := struct {
		CompanyName    string
		Body           template.HTML
		UnsubscribeURL string
	}{
		CompanyName:    r.CompanyName,
		Body:           template.HTML(body),
		UnsubscribeURL: fmt.Sprintf("%s/unsubscribe?leadId=%s&channel=email", r.BaseURL, lead.ID),
	}

	var buf bytes.Buffer
	if err := envelopeTmpl.Execute(&buf, data); err != nil {
		// The template is a compile-time constant; execution only fails
		// on writer errors, which bytes.Buffer never produces.
		return body
	}
	return buf.String()
}

func firstName(lead *entity.Lead) string {
	name := lead.Name
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	if name == "" {
		return "there"
	}
	return name
}
