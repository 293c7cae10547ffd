package jobs

import (
	"bytes"
	"fmt"
	"html/template"
)

type assignedEmailData struct {
	Name         string
	Date         string
	DashboardURL string
}

type validatedEmailData struct {
	Name         string
	Date         string
	Percent      string
	DashboardURL string
}

var assignedEmailTmpl = template.Must(template.New("assigned").Parse(`<p>Hi {{.Name}},</p>
<p>You have new daily assessments for <strong>{{.Date}}</strong>.</p>
<p><a href="{{.DashboardURL}}">Open PulsePad</a> to complete them.</p>`))

var validatedEmailTmpl = template.Must(template.New("validated").Parse(`<p>Hi {{.Name}},</p>
<p>Your assessment for <strong>{{.Date}}</strong> was reviewed. Final score: <strong>{{.Percent}}</strong>.</p>
<p><a href="{{.DashboardURL}}">See the details</a></p>`))

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
