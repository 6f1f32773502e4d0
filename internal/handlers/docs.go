package handlers

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"html/template"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiSpec []byte

// specETag identifies the embedded API description; it changes only when
// the binary does.
var specETag = func() string {
	sum := sha256.Sum256(openapiSpec)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}()

type apiInfo struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// specInfo reads the info block of the embedded description once.
var specInfo = sync.OnceValue(func() apiInfo {
	var doc struct {
		Info apiInfo `yaml:"info"`
	}
	if err := yaml.Unmarshal(openapiSpec, &doc); err != nil || doc.Info.Title == "" {
		return apiInfo{Title: "it_inventory API", Version: "unknown"}
	}
	return doc.Info
})

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} {{.Version}} Docs</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.yaml",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
      deepLinking: true,
      docExpansion: "list",
      tryItOutEnabled: true,
    });
  </script>
</body>
</html>`))

// OpenAPISpec handles GET /openapi.yaml. Clients holding the current ETag
// get 304.
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", specETag)
	if r.Header.Get("If-None-Match") == specETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(openapiSpec)
}

// Docs handles GET /docs with a Swagger UI page titled from the API description.
func Docs(w http.ResponseWriter, r *http.Request) {
	info := specInfo()
	var buf bytes.Buffer
	if err := docsPage.Execute(&buf, info); err != nil {
		http.Error(w, "render docs", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
