package api

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/prompts"
)

// HTTPStatus returns the status code for an error returned by the analyzer.
func HTTPStatus(err error) int {
	var verr *analysis.ValidationError
	var cerr *prompts.UnknownCategoryError
	switch {
	case errors.As(err, &verr), errors.As(err, &cerr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is the error text sent to the caller. Server-side failures
// get the route's generic message; details stay in the log.
func clientMessage(err error, generic string) string {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) {
		return verr.UserMessage()
	}
	var cerr *prompts.UnknownCategoryError
	if errors.As(err, &cerr) {
		return "Unknown category: " + cerr.Label
	}
	return generic
}
