package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertHeader compares one response header.
func AssertHeader(t *testing.T, scenario *Scenario, name, want, got string) {
	t.Helper()
	assert.Equal(t, want, got, "[%s] header %s mismatch", scenario.Name, name)
}

// AssertJSONBody compares both documents after decoding, so key order and
// whitespace never matter.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()

	var expVal, actVal interface{}
	if !assert.NoError(t, json.Unmarshal(expected, &expVal),
		"[%s] expected response is not valid JSON\nbody: %s", scenario.Name, string(expected)) {
		return
	}
	if !assert.NoError(t, json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual)) {
		return
	}

	assert.Equal(t, expVal, actVal, "[%s] response body mismatch", scenario.Name)
}
