package oauth

import (
	"html/template"
	"io"
)

type pageData struct {
	Title   string
	Message string
	Code    string
}

//nolint:misspell // CSS properties use American spelling
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>ytpicker - YouTube authorization</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
            max-width: 640px;
        }
        h1 { color: #333F50; margin: 0 0 8px 0; font-size: 24px; font-weight: 600; }
        p { color: #7B8088; margin: 0; font-size: 16px; }
        code {
            display: block;
            margin-top: 24px;
            padding: 16px;
            background: #F2F3F5;
            border-radius: 8px;
            word-break: break-all;
            font-size: 14px;
            color: #333F50;
            user-select: all;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <p>{{.Message}}</p>
        {{if .Code}}<code>{{.Code}}</code>{{end}}
    </div>
</body>
</html>`))

// SuccessPage renders a confirmation page.
func SuccessPage(w io.Writer, title, message string) error {
	return pageTemplate.Execute(w, pageData{Title: title, Message: message})
}

// ErrorPage renders a failure page.
func ErrorPage(w io.Writer, message string) error {
	return pageTemplate.Execute(w, pageData{Title: "Authorization failed", Message: message})
}

// CodePage shows an authorization code for the operator to copy into the
// refresh-token wizard.
func CodePage(w io.Writer, code string) error {
	return pageTemplate.Execute(w, pageData{
		Title:   "Authorization code",
		Message: "Copy this code and paste it into the terminal running ytpicker youtube generate-refresh-token.",
		Code:    code,
	})
}
