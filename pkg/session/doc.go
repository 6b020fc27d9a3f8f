// Package session provides cookie-based session storage with signing and
// optional authenticated encryption, plus one-shot flash values.
//
// # Overview
//
// Two implementations share the Store interface:
//
//   - CookieStore serializes the whole session into a single signed (and
//     optionally encrypted) cookie. No server-side state is kept.
//   - ServerStore keeps the session payload in a pluggable DataStore backend
//     (memory, Redis, Postgres) and puts only a signed session id into the
//     cookie.
//
// Both follow the same lifecycle: GetSession reads the request cookie,
// CommitSession returns the Set-Cookie directive persisting the current
// state, and DestroySession invalidates the session and always returns a
// Max-Age=0 directive, even for sessions that were never committed.
//
// Integrity failures never surface as errors. A tampered, expired or
// otherwise unreadable cookie produces a fresh empty session under a new id,
// so a forged cookie is indistinguishable from no cookie at all.
//
// # Usage
//
//	store, err := session.NewCookieStore(session.Config{
//	    Name:   "__session",
//	    Secret: os.Getenv("SESSION_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sess, _ := store.GetSession(r)
//	sess.Set("userId", "123")
//	setCookie, err := store.CommitSession(r.Context(), sess)
//	if err == nil {
//	    w.Header().Add("Set-Cookie", setCookie)
//	}
//
// # Flash values
//
// Flash values are stored separately from persistent data and survive
// exactly one read: GetFlash returns the value and removes it from the
// in-memory session in a single step, so the removal is persisted by the
// next commit.
//
// # Session ids
//
// Session ids are 32 cryptographically random bytes, hex encoded (256 bits
// of entropy). Id generation and signing belong exclusively to the store;
// callers own a Session only for the duration of one request.
//
// # Concurrency
//
// A Session is request-scoped and not safe for concurrent use. MemoryStore
// is safe for concurrent requests but resolves concurrent commits to the
// same id with last-write-wins semantics, which is acceptable for a
// development store; production backends are expected to bring their own
// concurrency control.
package session
