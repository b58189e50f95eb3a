package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// 抓取接口的返回包含整份名单，只保留前 4KB
const auditBodyLimit = 4096

// cappedWriter 透传响应，同时保留前 auditBodyLimit 字节用于审计
type cappedWriter struct {
	gin.ResponseWriter
	captured bytes.Buffer
}

func (w *cappedWriter) Write(b []byte) (int, error) {
	w.captured.Write(capBytes(b, auditBodyLimit-w.captured.Len()))
	return w.ResponseWriter.Write(b)
}

func capBytes(b []byte, n int) []byte {
	if n <= 0 {
		return nil
	}
	if len(b) > n {
		return b[:n]
	}
	return b
}

// AuditMiddleware 每个请求在结束时输出一条审计日志，5xx 记为 Error
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/ping" {
			c.Next()
			return
		}

		reqBody := peekBody(c)
		w := &cappedWriter{ResponseWriter: c.Writer}
		c.Writer = w
		start := time.Now()

		c.Next()

		level := log.LevelInfo
		switch status := w.Status(); {
		case status >= 500:
			level = log.LevelError
		case status >= 400:
			level = log.LevelWarn
		}

		log.Default().LogAttrs(c.Request.Context(), level, "API Audit",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery(c.Request.URL.RawQuery)),
			log.String("req_body", string(reqBody)),
			log.Int("status", w.Status()),
			log.Duration("latency", time.Since(start)),
			log.String("res_body", w.captured.String()),
		)
	}
}

// peekBody 读出请求体后放回，供后续 handler 绑定
func peekBody(c *gin.Context) []byte {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	return capBytes(body, auditBodyLimit)
}

func decodedQuery(raw string) string {
	if q, err := url.QueryUnescape(raw); err == nil {
		return q
	}
	return raw
}
