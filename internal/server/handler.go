package server

import (
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
)

const indexPage = "/index.html"

// NewHandler returns the static file handler for root: files are served
// with a content type from their extension, directories as an HTML listing
// (or their index.html), and anything else as 404. Only GET and HEAD are
// accepted.
func NewHandler(root string) http.Handler {
	dir := http.Dir(root)
	return logRequests(allowReadOnly(exactPaths(dir, http.FileServer(dir))))
}

// exactPaths handles the two cases where http.FileServer redirects instead
// of answering for the path as written: a request for an index.html file is
// served as that file, and a file requested with a trailing slash is 404.
// Everything else goes to next.
func exactPaths(dir http.Dir, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := r.URL.Path
		indexReq := strings.HasSuffix(upath, indexPage)
		slashReq := upath != "/" && strings.HasSuffix(upath, "/")
		if !indexReq && !slashReq {
			next.ServeHTTP(w, r)
			return
		}

		f, err := dir.Open(path.Clean("/" + upath))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			next.ServeHTTP(w, r)
			return
		}

		if slashReq {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

func allowReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, fmt.Sprintf("Unsupported method (%q)", r.Method), http.StatusNotImplemented)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code and body size for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.Printf("%s %s %s %d %d", r.RemoteAddr, r.Method, r.URL.Path, rec.status, rec.bytes)
	})
}
