package httphandler

import "net/http"

// ClientIDHeader identifies the shopper; every storefront route
// except the admin product feed requires it.
const ClientIDHeader = "X-Client-Id"

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

func clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(ClientIDHeader)
	if id == "" {
		http.Error(w, "missing client id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
