package cookie

import (
	"maps"
	"net/http"
)

// Jar tracks cookies for a single request/response cycle: a snapshot of the
// incoming Cookie header plus a queue of outgoing Set-Cookie directives.
// It is owned by exactly one request and is not safe for concurrent use.
type Jar struct {
	codec    *Codec
	defaults Options
	incoming map[string]string
	queued   []string
}

// NewJar builds a Jar from the request's Cookie headers. The returned jar has
// no codec bound, so only plain cookie operations are available.
func NewJar(r *http.Request, opts ...Option) *Jar {
	j := &Jar{
		defaults: applyOptions(Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}, opts),
		incoming: make(map[string]string),
	}

	if r != nil {
		for _, h := range r.Header.Values("Cookie") {
			maps.Copy(j.incoming, ParseCookies(h))
		}
	}

	return j
}

// NewJar builds a Jar bound to the codec, enabling signed and encrypted
// operations with the codec's default attributes.
func (c *Codec) NewJar(r *http.Request, opts ...Option) *Jar {
	j := NewJar(r, opts...)
	j.codec = c
	j.defaults = applyOptions(c.defaults, opts)
	return j
}

// Get returns the value of an incoming cookie, including values set earlier
// in the same request via Set.
func (j *Jar) Get(name string) (string, bool) {
	v, ok := j.incoming[name]
	return v, ok
}

// Set queues a Set-Cookie directive and makes the value visible to
// subsequent Get calls within the same request.
func (j *Jar) Set(name, value string, opts ...Option) {
	j.incoming[name] = value
	j.queued = append(j.queued, Serialize(name, value, applyOptions(j.defaults, opts)))
}

// Delete queues an expired Set-Cookie directive (Max-Age=0) and removes the
// value from the incoming snapshot.
func (j *Jar) Delete(name string) {
	delete(j.incoming, name)

	opts := j.defaults
	opts.MaxAge = -1
	opts.Expires = expiredTime
	j.queued = append(j.queued, Serialize(name, "", opts))
}

// GetSigned verifies and returns a signed cookie value.
func (j *Jar) GetSigned(name string) (string, error) {
	if j.codec == nil {
		return "", ErrNoCodec
	}
	v, ok := j.Get(name)
	if !ok {
		return "", ErrCookieNotFound
	}
	return j.codec.Verify(v)
}

// SetSigned queues a signed cookie.
func (j *Jar) SetSigned(name, value string, opts ...Option) error {
	if j.codec == nil {
		return ErrNoCodec
	}
	j.Set(name, j.codec.Sign(value), opts...)
	return nil
}

// GetEncrypted decrypts and returns an encrypted cookie value.
func (j *Jar) GetEncrypted(name string) (string, error) {
	if j.codec == nil {
		return "", ErrNoCodec
	}
	v, ok := j.Get(name)
	if !ok {
		return "", ErrCookieNotFound
	}
	return j.codec.Decrypt(v)
}

// SetEncrypted queues an encrypted cookie.
func (j *Jar) SetEncrypted(name, value string, opts ...Option) error {
	if j.codec == nil {
		return ErrNoCodec
	}
	encrypted, err := j.codec.Encrypt(value)
	if err != nil {
		return err
	}
	j.Set(name, encrypted, opts...)
	return nil
}

// AddSetCookie queues a pre-serialized Set-Cookie directive, as produced by
// a session store's commit or destroy.
func (j *Jar) AddSetCookie(directive string) {
	if directive != "" {
		j.queued = append(j.queued, directive)
	}
}

// SetCookies returns a copy of the queued Set-Cookie directives.
func (j *Jar) SetCookies() []string {
	out := make([]string, len(j.queued))
	copy(out, j.queued)
	return out
}

// Apply appends every queued Set-Cookie directive to the headers. It never
// overwrites Set-Cookie values that are already present.
func (j *Jar) Apply(h http.Header) {
	for _, sc := range j.queued {
		h.Add("Set-Cookie", sc)
	}
}
