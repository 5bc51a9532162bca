package apidoc

import (
	"html/template"
	"io"
)

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: {{.SpecURI}}, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

// WriteSwaggerUI renders a Swagger UI page loading the document at specURI.
func WriteSwaggerUI(w io.Writer, title, specURI string) error {
	return swaggerPage.Execute(w, struct {
		Title   string
		SpecURI string
	}{Title: title, SpecURI: specURI})
}
