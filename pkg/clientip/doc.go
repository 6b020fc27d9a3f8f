// Package clientip extracts the originating client address from requests
// arriving through CDNs and reverse proxies. It feeds the edge request
// context and the logging middleware.
//
// Resolution walks the forwarding headers in priority order, taking the
// first valid address:
//
//  1. CF-Connecting-IP – Cloudflare
//  2. True-Client-IP   – Akamai, Cloudflare Enterprise
//  3. X-Forwarded-For  – comma-separated list, first valid entry
//  4. X-Real-IP        – nginx and similar proxies
//  5. RemoteAddr       – TCP peer address fallback
//
// GetIP never fails; when nothing parses as an address it returns "".
// Middleware stores the resolved address in the request context for
// handlers that sit behind plain net/http rather than the edge dispatcher;
// GetIPFromContext reads it back.
package clientip
