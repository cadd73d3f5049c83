package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"internship-monitor/internal/models"
)

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"posted": postedOrRecently,
}).Parse(`<html>
  <head>
    <style>
      body { font-family: 'Segoe UI', Tahoma, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
      .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 10px; overflow: hidden; }
      .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: #fff; padding: 28px; text-align: center; }
      .header h1 { margin: 0; font-size: 26px; }
      .content { padding: 28px; }
      .intro { color: #333; font-size: 16px; line-height: 1.6; margin-bottom: 24px; }
      .card { border: 2px solid #e0e0e0; border-radius: 8px; padding: 18px; margin-bottom: 18px; background: #fafafa; }
      .card h2 { color: #667eea; font-size: 19px; margin: 0 0 10px 0; }
      .row { margin: 6px 0; color: #555; font-size: 14px; }
      .label { font-weight: 600; color: #333; margin-right: 6px; }
      .apply { display: inline-block; background: #667eea; color: #fff !important; padding: 10px 28px; border-radius: 24px; margin-top: 12px; text-decoration: none; font-weight: bold; }
      .footer { background: #f8f8f8; padding: 18px; text-align: center; color: #777; font-size: 12px; border-top: 1px solid #e0e0e0; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>🎉 New Internship Opportunities!</h1></div>
      <div class="content">
        <p class="intro">We found <strong>{{.Count}}</strong> new internship{{.Plural}} matching your preferences on Internshala. Apply before they fill up!</p>
{{- range .Listings}}
        <div class="card">
          <h2>{{.Title}}</h2>
          <div class="row"><span class="label">🏢 Company:</span>{{.Company}}</div>
          <div class="row"><span class="label">📍 Location:</span>{{.Location}}</div>
          <div class="row"><span class="label">💰 Stipend:</span>{{.StipendText}}</div>
          <div class="row"><span class="label">⏱️ Duration:</span>{{.Duration}}</div>
          <div class="row"><span class="label">🕐 Posted:</span>{{posted .PostingTimeText}}</div>
          <a class="apply" href="{{.Link}}">Apply Now →</a>
        </div>
{{- end}}
      </div>
      <div class="footer">
        <p>This is an automated notification from your Internshala monitor.</p>
        <p>Good luck with your applications! 🍀</p>
      </div>
    </div>
  </body>
</html>
`))

func postedOrRecently(text string) string {
	if text == "" {
		return "Recently"
	}
	return text
}

type digestData struct {
	Count    int
	Plural   string
	Listings []models.Listing
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Subject returns the digest subject line for n listings.
func Subject(n int) string {
	return fmt.Sprintf("🚀 %d New Internship%s on Internshala!", n, plural(n))
}

// RenderDigest renders the HTML body for the listings.
func RenderDigest(listings []models.Listing) (string, error) {
	var buf bytes.Buffer
	data := digestData{
		Count:    len(listings),
		Plural:   plural(len(listings)),
		Listings: listings,
	}
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}
