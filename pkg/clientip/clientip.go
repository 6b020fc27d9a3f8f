package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP extracts the client IP from an edge request, walking the usual
// proxy headers before falling back to the socket address:
//  1. CF-Connecting-IP (Cloudflare)
//  2. True-Client-IP (Akamai, Cloudflare Enterprise)
//  3. X-Forwarded-For (first valid entry)
//  4. X-Real-IP (nginx)
//  5. RemoteAddr
func GetIP(r *http.Request) string {
	for _, header := range []string{"CF-Connecting-IP", "True-Client-IP"} {
		if ip := parseIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// The header may list several hops; the first valid one is the
		// original client.
		for ip := range strings.SplitSeq(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// No port present, treat the whole string as an address.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string, returning "" when
// the input is not a valid address.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}
	return ip.String()
}
