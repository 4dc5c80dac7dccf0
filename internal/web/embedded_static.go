package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var EmbeddedStaticFS embed.FS

//go:embed templates/*.html
var EmbeddedTemplatesFS embed.FS

// ListEmbeddedFiles returns a list of all embedded static files for debugging
func ListEmbeddedFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(EmbeddedStaticFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// staticFS returns the on-disk static directory when dir is set, else the
// embedded static files.
func staticFS(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir: %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(EmbeddedStaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("embedded static: %w", err)
	}
	return sub, nil
}

// StaticHandler returns a Gin handler serving files from fsys. It must be
// registered on a "*filepath" route.
func StaticHandler(fsys fs.FS) gin.HandlerFunc {
	fileServer := http.FileServer(http.FS(fsys))

	return func(c *gin.Context) {
		path := c.Param("filepath")
		if path == "" || path == "/" || strings.HasSuffix(path, "/") {
			// no directory listings
			c.String(http.StatusNotFound, notFoundBody)
			return
		}
		if info, err := fs.Stat(fsys, strings.TrimPrefix(path, "/")); err != nil || info.IsDir() {
			c.String(http.StatusNotFound, notFoundBody)
			return
		}

		// Update the request URL path for the file server
		c.Request.URL.Path = path

		c.Header("Cache-Control", "public, max-age=3600") // browser caches an hour

		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
