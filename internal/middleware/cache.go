package middleware

import (
	"fmt"
	"net/http"
	"time"

	"yatube/internal/cache"
	"yatube/internal/logger"
	"yatube/internal/service"
)

// PageCacheKey is the cache key of page number page of the named route.
// Neither the caller nor other query parameters are part of it.
func PageCacheKey(name string, r *http.Request) string {
	return fmt.Sprintf("%s:page=%d", name, service.ParsePage(r.URL.Query().Get("page")))
}

// CachePage serves GET responses of a route from c for ttl. Only 200 responses
// are stored, and nothing invalidates an entry before it expires except an
// explicit Clear.
func CachePage(c cache.ResponseCache, ttl time.Duration, name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := PageCacheKey(name, r)
			log := logger.FromContext(ctx)

			entry, ok, err := c.Get(ctx, key)
			if err != nil {
				log.Warn("ошибка чтения кэша страницы", "key", key, "error", err)
			}
			if ok {
				if entry.ContentType != "" {
					w.Header().Set("Content-Type", entry.ContentType)
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(entry.Status)
				w.Write(entry.Body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			rw := newResponseWriter(w, true)
			next.ServeHTTP(rw, r)

			if rw.Status() != http.StatusOK {
				return
			}

			err = c.Set(ctx, key, &cache.Entry{
				Status:      http.StatusOK,
				ContentType: w.Header().Get("Content-Type"),
				Body:        rw.body.Bytes(),
			}, ttl)
			if err != nil {
				log.Warn("ошибка записи кэша страницы", "key", key, "error", err)
			}
		})
	}
}
