package web

import (
	"github.com/gin-gonic/gin"
)

const homeTemplate = "home.html"

func (s *WebServer) homePage(c *gin.Context) {
	data := s.getBaseTemplateData("Home")
	s.renderTemplate(c, homeTemplate, data)
}
