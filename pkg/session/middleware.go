package session

import "net/http"

// Middleware resolves the request's session and, when valid, attaches it
// to the request context. Unauthenticated requests pass through untouched;
// invalid tokens are cleared from the client as a side effect of Resolve.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, state := m.Resolve(r.Context(), w, r)
		if state != StateValid {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireAuth rejects requests without a valid session with 401.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, state := m.Resolve(r.Context(), w, r)
		if state != StateValid {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}
