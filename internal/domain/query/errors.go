package query

import "errors"

// Domain errors for plan parsing and validation.
var (
	// ErrNoJSON means the model reply contains no JSON object at all.
	ErrNoJSON = errors.New("no JSON object found in reply")

	// ErrMissingResult means the reply's JSON object lacks the required
	// top-level "result" key.
	ErrMissingResult = errors.New(`reply is missing the "result" key`)

	// ErrInvalidPlan wraps every plan validation failure.
	ErrInvalidPlan = errors.New("invalid query plan")
)
