package docstore

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	s := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := NewHandler(logger, s, "finance@firedesk.local")
	r := chi.NewRouter()
	h.MountRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, s
}

func TestFoldersEndpoint(t *testing.T) {
	srv, s := newTestServer(t)
	require.NoError(t, s.EnsurePeriodDir("20240909__20240922"))
	require.NoError(t, s.EnsurePeriodDir("20240923__20241006"))

	resp, err := http.Get(srv.URL + "/folders")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool     `json:"success"`
		Folders []string `json:"folders"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.Equal(t, []string{"20240923__20241006", "20240909__20240922"}, out.Folders)
}

func TestTimecardsEndpoint(t *testing.T) {
	srv, s := newTestServer(t)
	writeDoc(t, s, testPeriod, UnvalidatedName("891", testPeriod), "pdf")

	resp, err := http.Get(srv.URL + "/timecards/" + testPeriod)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success         bool     `json:"success"`
		Timecards       []string `json:"timecards"`
		SignedEmployees []string `json:"signedEmployees"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.Equal(t, []string{UnvalidatedName("891", testPeriod)}, out.Timecards)
	require.Equal(t, []string{"891"}, out.SignedEmployees)

	bad, err := http.Get(srv.URL + "/timecards/evil")
	require.NoError(t, err)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestDownloadEndpoint(t *testing.T) {
	srv, s := newTestServer(t)
	writeDoc(t, s, testPeriod, ValidatedName("891", testPeriod), "pdf bytes")

	resp, err := http.Get(srv.URL + "/download/" + testPeriod + "/" + ValidatedName("891", testPeriod))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "pdf bytes", string(data))

	missing, err := http.Get(srv.URL + "/download/" + testPeriod + "/missing.pdf")
	require.NoError(t, err)
	missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestConfigEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "finance@firedesk.local", out["financeEmail"])
}
