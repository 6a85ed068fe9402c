// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It maps service outcomes to HTTP status codes; every failure is
// returned as an error for the global error handler to render.
package handler
