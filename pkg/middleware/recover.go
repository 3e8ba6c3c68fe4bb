package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ananyakrishnan/zaika/pkg/logger"
	"github.com/ananyakrishnan/zaika/pkg/reqid"
	"github.com/ananyakrishnan/zaika/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace
// with the request id, and returns a 500 to the client. It sits after
// reqid.Middleware in the chain so the id is already in the context:
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Recovery)   // ← catches panics from all below
//	r.Use(middleware.Logger)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				logger.Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(stack),
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", reqid.FromCtx(r.Context()),
				)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
