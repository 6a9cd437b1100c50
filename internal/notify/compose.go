package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/flowquote/flowquote/internal/money"
)

var statusLabels = map[string]string{
	"NEW":       "New",
	"REVIEWING": "Reviewing",
	"QUOTED":    "Quoted",
	"APPROVED":  "Approved",
	"REJECTED":  "Rejected",
	"SCHEDULED": "Scheduled",
	"COMPLETED": "Completed",
}

var statusDescriptions = map[string]string{
	"NEW":       "We've received your request and the team has been notified.",
	"REVIEWING": "A technician is reviewing the information you provided.",
	"QUOTED":    "Your quote is ready to review and approve.",
	"APPROVED":  "Thanks! We've recorded your approval and will follow up shortly.",
	"REJECTED":  "The quote was rejected. Feel free to reply if you have questions.",
	"SCHEDULED": "Your service has been scheduled. We'll send the details separately.",
	"COMPLETED": "Your request has been marked as completed. Thank you!",
}

const defaultStatusDescription = "Your request has been updated. Reply if you have any questions."

// Composer turns events into email intents.
type Composer struct {
	AppName    string
	BaseURL    string
	AdminEmail string
}

type view struct {
	Event
	AppName           string
	RequestURL        string
	ApprovalURL       string
	VerifyURL         string
	StatusLabel       string
	StatusDescription string
	Verb              string
	Total             string
	SubmittedAt       string
	ProblemLines      []string
}

// ApprovalURL is the public link a client follows to resolve a quote.
func (c Composer) ApprovalURL(quoteID, token string) string {
	return fmt.Sprintf("%s/approve/%s?token=%s", c.BaseURL, quoteID, url.QueryEscape(token))
}

// Compose returns the intents for e. An event may yield zero intents, e.g. a
// client update when no client email is on file.
func (c Composer) Compose(e Event) ([]Message, error) {
	v := view{
		Event:        e,
		AppName:      c.AppName,
		RequestURL:   fmt.Sprintf("%s/requests/%s", c.BaseURL, e.Request.ID),
		ProblemLines: strings.Split(e.Request.ProblemDesc, "\n"),
	}

	var out []Message

	add := func(to, subject string, t *template.Template) error {
		if to == "" {
			return nil
		}

		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
			return fmt.Errorf("render %s email: %w", e.Kind, err)
		}

		out = append(out, Message{To: []string{to}, Subject: subject, HTML: buf.String()})

		return nil
	}

	switch e.Kind {
	case KindRequestCreated:
		if err := add(e.Business.Email, "New request from "+e.Request.ClientName, tmplRequestCreatedBusiness); err != nil {
			return nil, err
		}

		if err := add(e.Request.ClientEmail, e.Business.Name+" received your request", tmplRequestCreatedClient); err != nil {
			return nil, err
		}

	case KindStatusChanged:
		v.StatusLabel = statusLabels[e.Status]
		if v.StatusLabel == "" {
			v.StatusLabel = e.Status
		}

		v.StatusDescription = statusDescriptions[e.Status]
		if v.StatusDescription == "" {
			v.StatusDescription = defaultStatusDescription
		}

		if !e.QuoteTotal.IsZero() {
			v.Total = money.Format(e.QuoteTotal)
		}

		if e.Status == "QUOTED" && e.ApprovalToken != "" {
			v.ApprovalURL = c.ApprovalURL(e.QuoteID.String(), e.ApprovalToken)
		}

		subject := fmt.Sprintf("%s updated your request (%s)", e.Business.Name, v.StatusLabel)
		if err := add(e.Request.ClientEmail, subject, tmplStatusChangedClient); err != nil {
			return nil, err
		}

		if e.Status == "APPROVED" || e.Status == "REJECTED" {
			v.Verb = strings.ToLower(e.Status)
			subject := fmt.Sprintf("%s %s your quote", e.Request.ClientName, v.Verb)

			if err := add(e.Business.Email, subject, tmplStatusChangedBusiness); err != nil {
				return nil, err
			}
		}

	case KindVerificationRequested:
		v.VerifyURL = fmt.Sprintf("%s/verify-email?token=%s", c.BaseURL, url.QueryEscape(e.VerificationToken))

		if err := add(e.Business.Email, "Verify your "+c.AppName+" account", tmplVerification); err != nil {
			return nil, err
		}

	case KindPaymentSubmitted:
		v.SubmittedAt = e.SubmittedAt.UTC().Format("2006-01-02 15:04 MST")

		if err := add(c.AdminEmail, "Payment submitted by "+e.Business.Name, tmplPaymentSubmitted); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind)
	}

	return out, nil
}
