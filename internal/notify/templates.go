package notify

import "html/template"

const layout = `{{define "layout"}}<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #0f172a;">{{template "body" .}}</div>{{end}}`

const requestCreatedBusiness = `{{define "body"}}
<h2 style="margin-bottom: 8px;">New service request received</h2>
<p style="margin: 0 0 16px;">{{.Request.ClientName}} just submitted a new request.</p>
<div style="background:#f8fafc;border:1px solid #e2e8f0;border-radius:8px;padding:16px;margin-bottom:16px;">
<p style="margin:0;"><strong>Client:</strong> {{.Request.ClientName}}</p>
<p style="margin:0;"><strong>Email:</strong> {{with .Request.ClientEmail}}{{.}}{{else}}-{{end}}</p>
<p style="margin:0;"><strong>Phone:</strong> {{.Request.ClientPhone}}</p>
<p style="margin:0;"><strong>Address:</strong> {{.Request.ClientAddress}}</p>
</div>
<p style="margin-bottom:8px;"><strong>Problem description</strong></p>
<p style="background:#f1f5f9;border-radius:8px;padding:12px;margin-top:0;">{{range $i, $line := .ProblemLines}}{{if $i}}<br />{{end}}{{$line}}{{end}}</p>
<p style="margin-top:24px;"><a href="{{.RequestURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;display:inline-block;">Open in dashboard</a></p>
{{end}}`

const requestCreatedClient = `{{define "body"}}
<h2 style="margin-bottom: 8px;">Thanks, {{.Request.ClientName}}!</h2>
<p style="margin: 0 0 16px;">We received your request and {{.Business.Name}} will follow up shortly.</p>
<p style="margin:0 0 4px;"><strong>What happens next?</strong></p>
<ol style="margin:0 0 16px 20px;padding:0;">
<li>We review the details you provided</li>
<li>We prepare a quote</li>
<li>You receive updates by email or phone</li>
</ol>
<p style="margin:0;">If anything changes, just reply to this email.</p>
{{end}}`

const statusChangedClient = `{{define "body"}}
<h2 style="margin-bottom: 8px;">Your request status has changed</h2>
<p style="margin:0 0 12px;">{{.StatusDescription}}</p>
<div style="background:#f8fafc;border:1px solid #e2e8f0;border-radius:8px;padding:16px;margin-bottom:16px;">
<p style="margin:0;"><strong>Status:</strong> {{.StatusLabel}}</p>
<p style="margin:0;"><strong>Business:</strong> {{.Business.Name}}</p>
{{with .Total}}<p style="margin:0;"><strong>Quote total:</strong> {{.}}</p>{{end}}
</div>
{{with .ApprovalURL}}<p style="margin-top:0;margin-bottom:16px;">Your detailed quote is available here:</p>
<p style="margin:0;"><a href="{{.}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;display:inline-block;">View &amp; approve quote</a></p>{{end}}
<p style="margin-top:24px;">Need to talk to us? Just reply to this email.</p>
{{end}}`

const statusChangedBusiness = `{{define "body"}}
<h2 style="margin-bottom: 8px;">Quote {{.StatusLabel}}</h2>
<p style="margin:0 0 12px;">{{.Request.ClientName}} has {{.Verb}} your quote{{with .Total}} for {{.}}{{end}}.</p>
{{with .Event.RejectionNote}}<p style="background:#f1f5f9;border-radius:8px;padding:12px;"><strong>Reason:</strong> {{.}}</p>{{end}}
<p style="margin-top:24px;"><a href="{{.RequestURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;display:inline-block;">Open in dashboard</a></p>
{{end}}`

const verificationRequested = `{{define "body"}}
<h2 style="margin-bottom: 8px;">Confirm your email</h2>
<p style="margin:0 0 12px;">Welcome to {{.AppName}}, {{.Business.Name}}. Confirm your email address to activate your account.</p>
<p style="margin:0;"><a href="{{.VerifyURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;display:inline-block;">Verify email</a></p>
<p style="margin-top:24px;color:#64748b;">This link expires in 24 hours.</p>
{{end}}`

const paymentSubmitted = `{{define "body"}}
<h2 style="margin-bottom: 8px;">Payment submitted</h2>
<p style="margin:0 0 12px;">{{.Business.Name}} ({{.Business.Email}}) reported a payment on {{.SubmittedAt}}.</p>
<p style="margin:0;">Business ID: {{.Business.ID}}</p>
{{end}}`

func parse(body string) *template.Template {
	t := template.Must(template.New("layout").Parse(layout))
	return template.Must(t.Parse(body))
}

var (
	tmplRequestCreatedBusiness = parse(requestCreatedBusiness)
	tmplRequestCreatedClient   = parse(requestCreatedClient)
	tmplStatusChangedClient    = parse(statusChangedClient)
	tmplStatusChangedBusiness  = parse(statusChangedBusiness)
	tmplVerification           = parse(verificationRequested)
	tmplPaymentSubmitted       = parse(paymentSubmitted)
)
