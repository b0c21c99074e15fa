// internal/web/web.go
//
// Embedded single-page application form.
//
// The page collects the same fields the API validates and renders the four
// response classes (accepted, field errors, cooldown, server error)
// without any client-side framework.  It is compiled into the binary so
// the service ships as a single file.
package web

import (
	"embed"
	"net/http"
)

//go:embed static
var static embed.FS

// Handler serves the form page at “/” and its assets under /static/.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page, err := static.ReadFile("static/index.html")
		if err != nil {
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
	return mux
}
