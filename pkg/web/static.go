package web

import (
	"io/fs"
	"net/http"
)

// Static serves files from fsys by the {filename...} path variable.
// Directories are not listed.
func Static(fsys fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("filename")
		if name == "" || !fs.ValidPath(name) {
			http.NotFound(w, r)
			return
		}

		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		http.ServeFileFS(w, r, fsys, name)
	}
}
