package web

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// asyncjsTemplateName formats the template name for demo page num.
func asyncjsTemplateName(num uint64) string {
	return fmt.Sprintf("asyncJS%d.html", num)
}

// parseDemoNum accepts only unsigned base-10 integers; signs, fractions and
// values overflowing uint64 are rejected.
func parseDemoNum(raw string) (uint64, bool) {
	num, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// asyncjsPage handles "/asyncjs/:num". A segment that is not a non-negative
// integer is treated as an unmatched route.
func (s *WebServer) asyncjsPage(c *gin.Context) {
	num, ok := parseDemoNum(c.Param("num"))
	if !ok {
		s.notFound(c)
		return
	}

	data := AsyncJSPageData{
		TemplateData: s.getBaseTemplateData(fmt.Sprintf("Async JS %d", num)),
		Num:          num,
	}
	s.renderTemplate(c, asyncjsTemplateName(num), data)
}
