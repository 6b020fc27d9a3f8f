// Package csrf issues and verifies HMAC-based CSRF tokens bound to a
// session id.
//
// A token is three colon-separated parts: the session id, the issue time in
// milliseconds encoded base36, and a base64url HMAC-SHA256 signature over the
// first two parts. Verification checks the signature in constant time, that
// the token belongs to the presented session, and that it has not outlived
// its TTL. An empty session id falls back to a shared anonymous identity,
// so pre-login forms still get working tokens.
//
// Usage:
//
//	guard, err := csrf.New(csrf.Config{Secret: secret, Enabled: true})
//	if err != nil {
//		return err
//	}
//
//	token, err := guard.Generate(sess.ID()) // embed into the form or page
//	if err != nil {
//		return err
//	}
//
//	if !guard.Verify(token, sess.ID()) {
//		// reject the request
//	}
//
// Protect wraps the check into an edge middleware that enforces tokens on
// every state-changing request.
package csrf
