// Package service holds the feedback business rules.
//
// It sits between the handler and repository layers: handlers pass in
// validated payloads, the service calls the repository and turns "no such
// feedback" into a 404.
package service
