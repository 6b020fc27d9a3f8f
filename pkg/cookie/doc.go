// Package cookie implements the cookie wire format together with signing and
// authenticated encryption of cookie values, plus a per-request Jar that
// collects outgoing Set-Cookie directives until the response is finalized.
//
// # Overview
//
// The `Codec` type is the entry point. It is initialised with a signing secret
// (plus optional fallback secrets for key rotation) and an optional encryption
// secret. Signing uses HMAC-SHA256; encryption uses AES-256-GCM with a key
// derived from the encryption secret via HKDF-SHA256.
//
// Wire formats:
//
//   - Signed value: value + "." + base64url(HMAC-SHA256(secret, value)).
//     Verification splits on the last dot and uses a constant-time comparison.
//   - Encrypted value: base64url(nonce || AES-256-GCM ciphertext) with a fresh
//     random 12-byte nonce per call.
//   - Set-Cookie attributes are emitted in a fixed order: Max-Age, Expires,
//     Path, Domain, Secure, HttpOnly, SameSite.
//
// Tampered or malformed input is reported through sentinel errors
// (ErrInvalidSignature, ErrDecryptionFailed); the codec never panics on
// attacker-controlled data. Callers are expected to treat those errors as
// "no value" so a forged cookie is indistinguishable from a missing one.
//
// # Jar
//
// A `Jar` snapshots the incoming Cookie header of one request and queues
// outgoing Set-Cookie strings. Nothing is written to the wire until Apply is
// called on the final response headers, which appends each queued directive.
// A Jar is exclusively owned by one request and is not safe for concurrent
// use.
//
// # Usage
//
//	codec, err := cookie.New(cookie.Config{Secret: os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	jar := codec.NewJar(r)
//	jar.Set("theme", "dark")
//	if err := jar.SetEncrypted("token", token); err != nil {
//	    // encryption secret not configured or crypto failure
//	}
//	jar.Apply(w.Header())
//
// # Configuration
//
// The `Config` struct carries env tags so it can be populated via
// github.com/caarlos0/env. Secrets shorter than 32 characters are rejected at
// construction time, not at first use.
package cookie
