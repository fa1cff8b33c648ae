package mw

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Cache"

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache caches successful GET responses under a set of path prefixes
// and drops every entry once any write request succeeds.
type ResponseCache struct {
	store    *cache.Cache
	ttl      time.Duration
	prefixes []string
}

// NewResponseCache builds a cache for GETs whose path starts with one of prefixes.
func NewResponseCache(ttl time.Duration, prefixes ...string) *ResponseCache {
	return &ResponseCache{
		store:    cache.New(ttl, 2*ttl),
		ttl:      ttl,
		prefixes: prefixes,
	}
}

// Flush empties the cache.
func (rc *ResponseCache) Flush() {
	rc.store.Flush()
}

// Len is the number of live entries.
func (rc *ResponseCache) Len() int {
	return rc.store.ItemCount()
}

func (rc *ResponseCache) cacheable(path string) bool {
	for _, p := range rc.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Middleware serves cached GETs and invalidates on successful writes.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet:
		case http.MethodHead, http.MethodOptions:
			c.Next()
			return
		default:
			c.Next()
			if s := c.Writer.Status(); s >= 200 && s < 300 {
				rc.Flush()
			}
			return
		}

		if !rc.cacheable(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if resp, found := rc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set(CacheHeader, "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw
		c.Writer.Header().Set(CacheHeader, "MISS")

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			headers := blw.Header().Clone()
			for _, h := range []string{CacheHeader, "Content-Encoding", "Content-Length", "Vary"} {
				headers.Del(h)
			}
			rc.store.Set(key, cachedResponse{
				status:  blw.Status(),
				headers: headers,
				body:    blw.body.Bytes(),
			}, rc.ttl)
		}
	}
}
