package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// swaggerUIVersion pins the swagger-ui-dist bundle loaded from the CDN.
const swaggerUIVersion = "5"

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@{{.Version}}/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: {{.SpecURL}}, dom_id: '#swagger-ui', layout: 'BaseLayout',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset]});
  </script>
</body>
</html>`))

// DocsHandler serves the OpenAPI document and a Swagger UI page for it.
type DocsHandler struct {
	spec []byte
}

// NewDocsHandler serves spec, which may be nil when the document was not found
// at startup.
func NewDocsHandler(spec []byte) *DocsHandler {
	return &DocsHandler{spec: spec}
}

// Spec handles GET /swagger/spec.
func (h *DocsHandler) Spec(c *gin.Context) {
	if len(h.spec) == 0 {
		c.String(http.StatusNotFound, "OpenAPI document not loaded")
		return
	}
	c.Data(http.StatusOK, "application/yaml", h.spec)
}

// UI handles GET /swagger.
func (h *DocsHandler) UI(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	_ = docsPage.Execute(c.Writer, map[string]string{
		"Title":   "Merchant Pulse - API Docs",
		"Version": swaggerUIVersion,
		"SpecURL": "/swagger/spec",
	})
}
