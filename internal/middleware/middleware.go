// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request logging, CORS, rate limiting,
// metrics, tracing and panic recovery. It also owns the global
// error handler, the single place error responses are written.
package middleware
