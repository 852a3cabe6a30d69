package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// runScenario fires one request at handler and checks status, headers and
// body.
func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	raw, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var body io.Reader
	if raw != nil {
		body = bytes.NewReader([]byte(vars.Expand(string(raw))))
	}

	method := strings.ToUpper(s.RequestMethod)
	if method == "" {
		method = http.MethodGet
	}

	req := httptest.NewRequest(method, vars.Expand(s.RequestURL), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, vars.Expand(v))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	for k, v := range s.ExpectedHeaders {
		AssertHeader(t, s, k, vars.Expand(v), rec.Header().Get(k))
	}

	expected, err := s.expectedBody()
	if err != nil {
		t.Errorf("[%s] read expected response: %v", s.Name, err)
		return
	}
	if expected != nil {
		AssertJSONBody(t, s, []byte(vars.Expand(string(expected))), rec.Body.Bytes())
	}
}
