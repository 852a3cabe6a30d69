package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

// ConfigEntry is one endpoint in the master test_scenarios.json.
type ConfigEntry struct {
	ServiceName       string `json:"serviceName"`
	FilePath          string `json:"filePath"`
	ScenariosFileName string `json:"scenariosFileName"`
	ServiceURL        string `json:"serviceUrl"`
	HTTPMethodType    string `json:"httpMethodType"`
}

// RunSuite runs every scenario listed by the master config at
// masterConfigPath against handler, one subtest per entry and scenario.
// Scenarios run in file order, so earlier ones may prepare state for later.
func RunSuite(t *testing.T, masterConfigPath string, handler http.Handler, vars Vars) {
	t.Helper()

	absMasterPath, err := filepath.Abs(masterConfigPath)
	if err != nil {
		t.Fatalf("testkit: resolve master config path %q: %v", masterConfigPath, err)
	}

	data, err := os.ReadFile(absMasterPath)
	if err != nil {
		t.Fatalf("testkit: read master config %q: %v", absMasterPath, err)
	}

	var entries []ConfigEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("testkit: parse master config %q: %v", absMasterPath, err)
	}
	if len(entries) == 0 {
		t.Fatalf("testkit: master config %q lists no entries", absMasterPath)
	}

	baseDir := filepath.Dir(absMasterPath)

	for _, entry := range entries {
		t.Run(entry.ServiceName, func(t *testing.T) {
			path := filepath.Join(baseDir, entry.FilePath, entry.ScenariosFileName)
			scenarios, err := LoadScenarioArray(path)
			if err != nil {
				t.Fatalf("testkit: %v", err)
			}

			url := entry.ServiceURL
			if url != "" && url[0] != '/' {
				url = "/" + url
			}

			for _, s := range scenarios {
				if s.RequestURL == "" {
					s.RequestURL = url
				}
				if s.RequestMethod == "" {
					s.RequestMethod = entry.HTTPMethodType
				}

				t.Run(s.Name, func(t *testing.T) {
					runScenario(t, handler, s, vars)
				})
			}
		})
	}
}
