package app

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// recoverPanic turns a handler panic into a 500 envelope. http.ErrAbortHandler
// is re-raised so net/http can abort the response silently.
func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			w.Header().Set("Connection", "close")

			app.contextGetLogger(r).Error("panic recovered", "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
		}()

		next.ServeHTTP(w, r)
	})
}
