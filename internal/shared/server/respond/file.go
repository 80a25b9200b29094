package respond

import (
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
)

// Attachment streams r as a download named fileName.
func Attachment(c *gin.Context, fileName, contentType string, size int64, r io.Reader) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{
		"Content-Disposition":    `attachment; filename="` + quoteSafe(fileName) + `"`,
		"X-Content-Type-Options": "nosniff",
		"Cache-Control":          "private, no-store",
	}
	if size < 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, contentType, r, headers)
}

func quoteSafe(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.ToValidUTF8(name, "_"))
	if name == "" {
		return "download"
	}
	return name
}
