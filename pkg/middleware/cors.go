package middleware

import (
	"net/http"
	"slices"
	"strings"
)

var allowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:4001",
	"https://ads-manager-web.vercel.app",
}

// AllowedOriginHosts devolve as origens aceitas sem o esquema, no formato usado pelo websocket
func AllowedOriginHosts() []string {
	hosts := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		hosts = append(hosts, strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"))
	}
	return hosts
}

func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if slices.Contains(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Expose-Headers", CorrelationIDHeader)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "86400") // 24 horas
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
