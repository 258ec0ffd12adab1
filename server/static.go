package server

import (
	"net/http"
	"strings"
)

// RegisterUploads exposes the stored app artifacts at their public path
// (/uploads/apps/<name>). Directory listings are not served.
func (a *App) RegisterUploads(prefix string) {
	if prefix == "" {
		prefix = "/uploads/apps/"
	}
	slash := strings.TrimSuffix(prefix, "/") + "/"

	dir := http.Dir(a.cfg.Storage.UploadsDir)
	fileServer := http.StripPrefix(slash, http.FileServer(dir))

	a.Router.PathPrefix(slash).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})).Methods(http.MethodGet)
}
