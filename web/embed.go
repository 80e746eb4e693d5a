// Package web embeds the static viewer page and serves it over HTTP.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:static
var staticFS embed.FS

// ViewerHandler returns an http.Handler that serves the embedded viewer.
// The page at / is the interactive blueprint viewer; everything else in
// static/ is served as-is.
func ViewerHandler() http.Handler {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(subFS))
}
