package cookie

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ParseCookies parses a Cookie request header into name/value pairs.
// Percent-encoded values are decoded; a malformed escape falls back to the
// raw value instead of failing the whole parse.
func ParseCookies(header string) map[string]string {
	out := make(map[string]string)

	for part := range strings.SplitSeq(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, _ := strings.Cut(part, "=")
		if name == "" {
			continue
		}
		out[name] = unescapeValue(value)
	}

	return out
}

// Serialize builds a Set-Cookie directive. Attributes are emitted in a fixed
// order (Max-Age, Expires, Path, Domain, Secure, HttpOnly, SameSite) so the
// output is byte-stable for a given input.
func Serialize(name, value string, opts Options) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(escapeValue(value))

	if opts.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(opts.MaxAge))
	} else if opts.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}
	if !opts.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(opts.Expires.UTC().Format(http.TimeFormat))
	}
	if opts.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(opts.Path)
	}
	if opts.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(opts.Domain)
	}
	if opts.Secure {
		b.WriteString("; Secure")
	}
	if opts.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	switch opts.SameSite {
	case http.SameSiteStrictMode:
		b.WriteString("; SameSite=Strict")
	case http.SameSiteLaxMode:
		b.WriteString("; SameSite=Lax")
	case http.SameSiteNoneMode:
		b.WriteString("; SameSite=None")
	}

	return b.String()
}

// escapeValue percent-encodes a value only when it contains octets that are
// not valid in a cookie-value. Signed and encrypted values are base64url and
// pass through untouched.
func escapeValue(v string) string {
	for i := 0; i < len(v); i++ {
		if !isCookieOctet(v[i]) {
			return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
		}
	}
	return v
}

func unescapeValue(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	decoded, err := url.QueryUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}

// isCookieOctet reports whether c may appear unescaped in a cookie-value per
// RFC 6265. The percent sign is excluded so escaped values stay unambiguous.
func isCookieOctet(c byte) bool {
	if c <= 0x20 || c >= 0x7f {
		return false
	}
	switch c {
	case '"', ',', ';', '\\', '%':
		return false
	}
	return true
}
