package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const TemplateWelcome = "welcome"

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif;">
    <h2>Welcome to the blog, {{.Name}}!</h2>
    <p>Your account was created with the <strong>{{.Role}}</strong> role.</p>
    {{if eq .Role "Author"}}<p>You can start publishing right away.</p>{{end}}
  </body>
</html>`))

// RenderWelcome renders the welcome template from job data.
func RenderWelcome(data map[string]any) (subject, text, html string, err error) {
	name := fmt.Sprintf("%v", data["Name"])
	var buf bytes.Buffer
	if err = welcomeHTML.Execute(&buf, map[string]any{
		"Name": name,
		"Role": fmt.Sprintf("%v", data["Role"]),
	}); err != nil {
		return "", "", "", err
	}
	subject = "Welcome to the blog"
	text = "Welcome to the blog, " + name + "!"
	return subject, text, buf.String(), nil
}
