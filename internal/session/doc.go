// Package session provides the per-request session capability used for
// login state and CSRF protection. Sessions are stored in signed cookies
// (gorilla/sessions) keyed by the application's SECRET_KEY.
//
// The CSRF token is created lazily on first read and lives for the whole
// session: validation never consumes or rotates it.
package session
