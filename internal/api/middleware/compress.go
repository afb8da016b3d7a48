package middleware

import (
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

type compressWriter struct {
	gin.ResponseWriter
	w io.Writer
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	return cw.w.Write(b)
}

func (cw *compressWriter) WriteString(s string) (int, error) {
	return io.WriteString(cw.w, s)
}

// Compress negotiates brotli or gzip encoding for responses.
// Paths with one of the skip prefixes are sent as is.
func Compress(skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range skip {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		if c.Request.Header.Get("Accept-Encoding") == "" {
			c.Next()
			return
		}

		enc := brotli.HTTPCompressor(c.Writer, c.Request)
		defer enc.Close()

		c.Writer.Header().Del("Content-Length")
		c.Writer = &compressWriter{ResponseWriter: c.Writer, w: enc}
		c.Next()
	}
}
