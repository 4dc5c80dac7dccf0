package web

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-asyncjs/internal/config"
)

// getBaseTemplateData creates a TemplateData struct with common information
func (s *WebServer) getBaseTemplateData(title string) TemplateData {
	return TemplateData{
		Title:      title,
		AppVersion: config.AppVersion,
		Year:       time.Now().Year(),
	}
}

// renderTemplate renders a template into a buffer and writes it with status
// 200. Failures never leave a partial page behind.
func (s *WebServer) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.Templates.Render(&buf, templateName, data); err != nil {
		s.renderError(c, http.StatusInternalServerError, "Template error", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// renderError logs the failure and answers with the plain status text
func (s *WebServer) renderError(c *gin.Context, statusCode int, message string, errstring string) {
	log.Printf("[WEB]: Error %d: %s - %s", statusCode, message, errstring)
	c.String(statusCode, http.StatusText(statusCode))
}

func (s *WebServer) notFound(c *gin.Context) {
	c.String(http.StatusNotFound, notFoundBody)
}
