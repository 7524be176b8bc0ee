package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"petpulse/internal/platform/logger"
)

// Recover convierte un panic en 500 {"message":"Server Error"} y lo loguea con el stack.
// Va después de AccessLog para tener el logger del request en el contexto.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered", map[string]any{
				"panic":  fmt.Sprint(rec),
				"method": r.Method,
				"path":   r.URL.Path,
				"stack":  string(debug.Stack()),
			})

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"Server Error"}` + "\n"))
		}()

		next.ServeHTTP(w, r)
	})
}
