// Package middleware holds the echo middleware shared by all routes and
// the global error handler, the single place where failures become HTTP
// responses.
package middleware
