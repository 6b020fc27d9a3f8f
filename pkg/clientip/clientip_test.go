package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/edgekit/pkg/clientip"
)

func newRequest(remoteAddr string, headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remoteAddr
	for name, value := range headers {
		r.Header.Set(name, value)
	}
	return r
}

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "CF-Connecting-IP wins over everything",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"True-Client-IP":   "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "True-Client-IP before forwarded headers",
			headers: map[string]string{
				"True-Client-IP":  "198.51.100.178",
				"X-Forwarded-For": "192.168.1.1, 10.0.0.1",
				"X-Real-IP":       "172.16.0.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "X-Forwarded-For first valid entry",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.178, 203.0.113.195",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "X-Forwarded-For skips invalid entries",
			headers: map[string]string{
				"X-Forwarded-For": "unknown, not-an-ip, 203.0.113.195",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "X-Real-IP when no forwarded headers",
			headers: map[string]string{
				"X-Real-IP": "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name:       "RemoteAddr fallback",
			headers:    map[string]string{},
			remoteAddr: "172.16.0.1:54321",
			expected:   "172.16.0.1",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "172.16.0.1",
			expected:   "172.16.0.1",
		},
		{
			name: "invalid priority header falls through",
			headers: map[string]string{
				"CF-Connecting-IP": "not-an-ip",
				"X-Real-IP":        "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name: "IPv6 address",
			headers: map[string]string{
				"CF-Connecting-IP": "2001:db8::1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "2001:db8::1",
		},
		{
			name:       "IPv6 RemoteAddr with port",
			headers:    map[string]string{},
			remoteAddr: "[2001:db8::1]:54321",
			expected:   "2001:db8::1",
		},
		{
			name: "normalizes IPv6 form",
			headers: map[string]string{
				"CF-Connecting-IP": "2001:0db8:0000:0000:0000:0000:0000:0001",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "2001:db8::1",
		},
		{
			name:       "everything invalid yields empty",
			headers:    map[string]string{"X-Forwarded-For": "garbage"},
			remoteAddr: "also-garbage",
			expected:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := clientip.GetIP(newRequest(tc.remoteAddr, tc.headers))
			if got != tc.expected {
				t.Errorf("GetIP() = %q, want %q", got, tc.expected)
			}
		})
	}
}
