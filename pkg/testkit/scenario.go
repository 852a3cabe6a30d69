// Package testkit runs JSON-described REST scenarios against an http.Handler.
//
// A master file lists one entry per endpoint; each entry points at an
// array of scenarios sharing its URL and method:
//
//	testdata/
//	  test_scenarios.json        ← master config
//	  products/show.json         ← scenarios for GET /api/products/{{id}}
//	  products/show_res.json     ← expected response body
//
// Placeholders such as {{token}} are filled from the Vars given to
// RunSuite, in URLs, headers, request bodies and expected bodies alike.
//
//	testkit.RunSuite(t, "testdata/test_scenarios.json", handler, testkit.Vars{
//	    "token": token,
//	    "id":    strconv.Itoa(int(product.ID)),
//	})
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario describes one request and the response it must produce.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request. URL and method default to the owning ConfigEntry.
	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	RequestBody     json.RawMessage   `json:"requestBody"`
	RawRequestBody  string            `json:"rawRequestBody"` // sent verbatim, e.g. malformed JSON
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ResponseFileName   string            `json:"responseFileName"`
	ResponseBody       json.RawMessage   `json:"responseBody"`
	ExpectedCode       int               `json:"expectedCode"`
	ExpectedStatusCode int               `json:"expectedStatusCode"` // alias for expectedCode
	ExpectedHeaders    map[string]string `json:"expectedHeaders"`

	dir string
}

// Vars fills {{name}} placeholders.
type Vars map[string]string

// Expand replaces every {{name}} in s with its value.
func (v Vars) Expand(s string) string {
	if len(v) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	pairs := make([]string, 0, 2*len(v))
	for name, value := range v {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// LoadScenarioArray reads the scenarios of one endpoint. A missing
// expected code means 200.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve scenario array path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read scenario array %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	for i, s := range scenarios {
		s.dir = dir
		if s.Name == "" {
			return nil, fmt.Errorf("testkit: %q item %d: name is required", abs, i)
		}
		if s.RequestFileName != "" && (len(s.RequestBody) > 0 || s.RawRequestBody != "") {
			return nil, fmt.Errorf("testkit: %q scenario %q: set one of requestFileName, requestBody, rawRequestBody", abs, s.Name)
		}
		if s.ResponseFileName != "" && len(s.ResponseBody) > 0 {
			return nil, fmt.Errorf("testkit: %q scenario %q: set one of responseFileName, responseBody", abs, s.Name)
		}
		if s.ExpectedCode == 0 {
			s.ExpectedCode = s.ExpectedStatusCode
		}
		if s.ExpectedCode == 0 {
			s.ExpectedCode = 200
		}
	}
	return scenarios, nil
}

// requestBody returns the body to send, or nil for none.
func (s *Scenario) requestBody() ([]byte, error) {
	switch {
	case s.RawRequestBody != "":
		return []byte(s.RawRequestBody), nil
	case len(s.RequestBody) > 0:
		return s.RequestBody, nil
	case s.RequestFileName != "":
		return os.ReadFile(s.resolve(s.RequestFileName))
	}
	return nil, nil
}

// expectedBody returns the body to compare against, or nil to skip.
func (s *Scenario) expectedBody() ([]byte, error) {
	switch {
	case len(s.ResponseBody) > 0:
		return s.ResponseBody, nil
	case s.ResponseFileName != "":
		return os.ReadFile(s.resolve(s.ResponseFileName))
	}
	return nil, nil
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
