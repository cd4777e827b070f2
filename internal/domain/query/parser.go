package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// envelope is the required shape of a model reply: the plan sits under a
// top-level "result" key, which is the signal that the reply is a query
// rather than prose.
type envelope struct {
	Result *json.RawMessage `json:"result"`
}

// Parse extracts the query plan from a raw model reply and validates it.
// Models often wrap the JSON in markdown fences or explanation text, so the
// reply is scanned for its outermost object first.
func Parse(reply string) (*Plan, error) {
	reply = strings.TrimSpace(reply)

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return nil, ErrNoJSON
	}
	raw := []byte(reply[start : end+1])

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	if env.Result == nil {
		return nil, ErrMissingResult
	}

	var plan Plan
	dec := json.NewDecoder(bytes.NewReader(*env.Result))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}
