// Package web embeds the single-page front end and serves it from the API
// binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded SPA. Unknown paths fall back to index.html
// so client-side routes survive a page reload.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean(r.URL.Path)
		if p != "/" {
			if _, err := fs.Stat(sub, p[1:]); err != nil {
				if !os.IsNotExist(err) {
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				r.URL.Path = "/"
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
