package api

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"

	"HTXErp/internal/logger"
)

// createReverseProxy returns a reverse proxy handler for the given target URL
func createReverseProxy(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.RemoteAddr
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			clientIP = xff
		}
		logger.Audit("[Gateway] " + r.Method + " " + r.URL.Path + " from " + clientIP)

		parsed, err := url.Parse(target)
		if err != nil {
			http.Error(w, "Bad gateway target", http.StatusInternalServerError)
			return
		}
		proxy := httputil.NewSingleHostReverseProxy(parsed)
		proxy.ServeHTTP(w, r)
	}
}

func StartGateway() {
	mux := http.NewServeMux()

	mux.HandleFunc("/master/", createReverseProxy("http://localhost:2143"))
	mux.HandleFunc("/orders/", createReverseProxy("http://localhost:3143"))
	mux.HandleFunc("/dash/", createReverseProxy("http://localhost:4143"))
	mux.HandleFunc("/ledger/", createReverseProxy("http://localhost:5143"))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API Gateway is healthy"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		msg := "[Gateway] [Error] " + r.URL.Path + " from " + r.RemoteAddr + " (route not found)"
		logger.Audit(msg)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 - Route not found"))
	})

	log.Println("API Gateway started on :8081")
	err := http.ListenAndServe(":8081", mux)
	if err != nil {
		log.Fatalf("Gateway server failed: %v", err)
	}
}
