// Package auth guards the snippetd module routes.
//
// It mirrors the function-key model of the original serverless host: a
// shared key in a request header, with HS256 bearer tokens as an
// alternative. Authenticators inspect *http.Request directly; the Require
// middleware attaches the resulting identity to the request context.
// Health endpoints never pass through this package.
package auth
