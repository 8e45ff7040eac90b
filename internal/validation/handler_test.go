package validation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Engine) {
	t.Helper()
	eng, _, _, _ := newTestEngine(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := NewHandler(logger, eng)
	r := chi.NewRouter()
	h.MountRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, eng
}

func TestValidateTimecardEndpoint(t *testing.T) {
	srv, eng := newTestServer(t)
	seedUnvalidated(t, eng.store, "891")

	body := `{"employeeIds":["891"],"folder":"` + testPeriod + `","validatorInfo":{"name":"J. Smith","rank":"Captain"}}`
	resp, err := http.Post(srv.URL+"/validate-timecard", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool         `json:"success"`
		Results []ItemResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.Len(t, out.Results, 1)
	require.True(t, out.Results[0].Success)
}

func TestValidateAllEndpointSummary(t *testing.T) {
	srv, eng := newTestServer(t)
	seedUnvalidated(t, eng.store, "891")

	body := `{"employeeIds":["891","999"],"folder":"` + testPeriod + `","validatorInfo":{"name":"J. Smith","rank":"Captain"}}`
	resp, err := http.Post(srv.URL+"/validate-all", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool    `json:"success"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.Equal(t, Summary{Total: 2, Validated: 1, Failed: 1}, out.Summary)
}

func TestValidateTimecardEndpointRejectsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []string{
		`{not json`,
		`{"employeeIds":[],"folder":"x","validatorInfo":{"name":"a","rank":"b"}}`,
		`{"employeeIds":["891"],"folder":"` + testPeriod + `","validatorInfo":{"name":"","rank":""}}`,
	}
	for _, body := range cases {
		resp, err := http.Post(srv.URL+"/validate-timecard", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
		resp.Body.Close()
	}
}

func TestValidationStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/validation-status/" + testPeriod)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success     bool     `json:"success"`
		Validations []Record `json:"validations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.NotNil(t, out.Validations)
	require.Empty(t, out.Validations)

	// Malformed folder is a client error.
	bad, err := http.Get(srv.URL + "/validation-status/junk")
	require.NoError(t, err)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
