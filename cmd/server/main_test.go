package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turkmorph/turkmorph"
)

const dataDir = "../../data"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := turkmorph.LoadDir(dataDir, turkmorph.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	srv := httptest.NewServer(newHandler(m, []string{"https://example.org"}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	status, out := do(t, http.MethodGet, srv.URL+"/api/analyze?word=kitaba", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "kitaba", out["word"])
	analyses := out["analyses"].([]any)
	require.NotEmpty(t, analyses)
	first := analyses[0].(map[string]any)
	assert.Equal(t, "kitap", first["lemma"])
	assert.Equal(t, "kitap+Noun+A3sg+Pnon+Dat", first["lexical"])

	status, _ = do(t, http.MethodGet, srv.URL+"/api/analyze", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/analyze?word=kitaba", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestAnalyzeListEndpoint(t *testing.T) {
	srv := newTestServer(t)
	status, out := do(t, http.MethodPost, srv.URL+"/api/analyze/list", `{"words":["kitaba","xqwvz"]}`)
	require.Equal(t, http.StatusOK, status)
	results := out["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "kitaba", results[0].(map[string]any)["word"])
	unknown := results[1].(map[string]any)["analyses"].([]any)[0].(map[string]any)
	assert.Equal(t, true, unknown["unknown"])

	status, _ = do(t, http.MethodPost, srv.URL+"/api/analyze/list", `{"words":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	words := make([]string, maxListWords+1)
	for i := range words {
		words[i] = "ev"
	}
	body, err := json.Marshal(map[string][]string{"words": words})
	require.NoError(t, err)
	status, _ = do(t, http.MethodPost, srv.URL+"/api/analyze/list", string(body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer(t)
	status, out := do(t, http.MethodGet, srv.URL+"/api/generate?item=kitap_Noun&suffixes=A3pl,Dat", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"kitaplara"}, out["words"])
	assert.Equal(t, []any{"A3pl", "Dat"}, out["suffixes"])

	status, _ = do(t, http.MethodGet, srv.URL+"/api/generate?item=masa_Noun&suffixes=Dat", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/generate", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInflectionEndpoint(t *testing.T) {
	srv := newTestServer(t)
	status, out := do(t, http.MethodGet, srv.URL+"/api/inflection?item=kalem_Noun", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "kalem_Noun", out["item"].(map[string]any)["id"])
	cells := out["cells"].(map[string]any)
	assert.Equal(t, []any{"kaleme"}, cells["A3sg+Dat"])

	status, _ = do(t, http.MethodGet, srv.URL+"/api/inflection?item=masa_Noun", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/inflection?item=ve_Conj", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestLexiconEndpoint(t *testing.T) {
	srv := newTestServer(t)
	status, out := do(t, http.MethodPost, srv.URL+"/api/lexicon", `{"line":"masa"}`)
	require.Equal(t, http.StatusCreated, status)
	added := out["added"].([]any)
	require.Len(t, added, 1)
	assert.Equal(t, "masa_Noun", added[0].(map[string]any)["id"])

	_, out = do(t, http.MethodGet, srv.URL+"/api/analyze?word=masaya", "")
	first := out["analyses"].([]any)[0].(map[string]any)
	assert.Equal(t, "masa+Noun+A3sg+Pnon+Dat", first["lexical"])

	status, _ = do(t, http.MethodPost, srv.URL+"/api/lexicon", `{"line":"masa"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/lexicon", `{"line":"masa [P:Noun"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, out = do(t, http.MethodDelete, srv.URL+"/api/lexicon?id=masa_Noun", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "masa_Noun", out["removed"])

	status, _ = do(t, http.MethodDelete, srv.URL+"/api/lexicon?id=masa_Noun", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/lexicon", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	status, out := do(t, http.MethodGet, srv.URL+"/api/stats", "")
	require.Equal(t, http.StatusOK, status)
	assert.NotZero(t, out["items"])
	graph := out["graph"].(map[string]any)
	assert.NotZero(t, graph["stems"])
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/analyze?word=ev", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://example.org", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
