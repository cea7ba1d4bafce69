package api

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticHandler serves files from webFS. "/" serves index.html; paths that
// don't resolve to a file get 404.html with status 404.
func StaticHandler(webFS fs.FS) http.HandlerFunc {
	files := http.FileServer(http.FS(webFS))
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}
		if info, err := fs.Stat(webFS, name); err != nil || info.IsDir() {
			notFound(w, webFS)
			return
		}
		if name == "index.html" {
			// FileServer redirects /index.html to /; serve it directly.
			serveFile(w, r, webFS, name)
			return
		}
		files.ServeHTTP(w, r)
	}
}

func serveFile(w http.ResponseWriter, r *http.Request, webFS fs.FS, name string) {
	data, err := fs.ReadFile(webFS, name)
	if err != nil {
		notFound(w, webFS)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func notFound(w http.ResponseWriter, webFS fs.FS) {
	data, err := fs.ReadFile(webFS, "404.html")
	if err != nil {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(data)
}
