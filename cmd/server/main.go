// Command server exposes the Turkish morphological analyzer as a JSON REST API.
//
// Endpoints:
//
//	GET    /api/analyze?word=<word>
//	POST   /api/analyze/list   body: {"words":["...", ...]}
//	GET    /api/generate?item=<id>&suffixes=A3pl,Dat
//	GET    /api/inflection?item=<id>
//	POST   /api/lexicon        body: {"line":"..."}
//	DELETE /api/lexicon?id=<id>
//	GET    /api/stats
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/turkmorph/turkmorph"
)

// maxListWords bounds the size of a batch request.
const maxListWords = 10000

// ---- JSON response types ------------------------------------------------

type itemJSON struct {
	ID            string `json:"id"`
	Lemma         string `json:"lemma"`
	Root          string `json:"root"`
	Pronunciation string `json:"pronunciation"`
	Pos           string `json:"pos"`
	SecondaryPos  string `json:"secondary_pos,omitempty"`
	Attrs         string `json:"attrs,omitempty"`
}

type analyzeResponse struct {
	Word     string                   `json:"word"`
	Analyses []turkmorph.WordAnalysis `json:"analyses"`
}

type analyzeListResponse struct {
	Results []analyzeResponse `json:"results"`
}

type generateResponse struct {
	Item     string   `json:"item"`
	Suffixes []string `json:"suffixes"`
	Words    []string `json:"words"`
}

type inflectionResponse struct {
	Item  itemJSON            `json:"item"`
	Cells map[string][]string `json:"cells"`
}

type lexiconResponse struct {
	Added   []itemJSON `json:"added,omitempty"`
	Removed string     `json:"removed,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toItemJSON(it *turkmorph.DictionaryItem) itemJSON {
	out := itemJSON{
		ID:            it.ID,
		Lemma:         it.Lemma,
		Root:          it.Root,
		Pronunciation: it.Pronunciation,
		Pos:           it.Pos.String(),
	}
	if it.SecondaryPos != turkmorph.SecNone {
		out.SecondaryPos = it.SecondaryPos.String()
	}
	if it.Attrs != 0 {
		out.Attrs = it.Attrs.String()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func splitSuffixes(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(m *turkmorph.Morphology) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if strings.TrimSpace(word) == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		writeJSON(w, http.StatusOK, analyzeResponse{Word: word, Analyses: m.Analyze(word)})
	}
}

func handleAnalyzeList(m *turkmorph.Morphology) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Words []string `json:"words"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Words) == 0 {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'words' field")
			return
		}
		if len(body.Words) > maxListWords {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d words per request", maxListWords))
			return
		}

		results, err := m.AnalyzeList(r.Context(), body.Words)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		out := make([]analyzeResponse, len(results))
		for i, res := range results {
			out[i] = analyzeResponse{Word: body.Words[i], Analyses: res}
			if out[i].Analyses == nil {
				out[i].Analyses = []turkmorph.WordAnalysis{}
			}
		}
		writeJSON(w, http.StatusOK, analyzeListResponse{Results: out})
	}
}

func handleGenerate(m *turkmorph.Morphology) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		id := r.URL.Query().Get("item")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing 'item' query parameter")
			return
		}
		suffixes := splitSuffixes(r.URL.Query().Get("suffixes"))
		words, err := m.Generate(id, suffixes...)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("item %q not found", id))
			return
		}
		if suffixes == nil {
			suffixes = []string{}
		}
		writeJSON(w, http.StatusOK, generateResponse{Item: id, Suffixes: suffixes, Words: words})
	}
}

func handleInflection(m *turkmorph.Morphology) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		id := r.URL.Query().Get("item")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing 'item' query parameter")
			return
		}
		table, err := m.InflectionTable(id)
		switch {
		case errors.Is(err, turkmorph.ErrUnknownItem):
			writeError(w, http.StatusNotFound, fmt.Sprintf("item %q not found", id))
			return
		case err != nil:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, inflectionResponse{Item: toItemJSON(table.Item), Cells: table.Cells})
	}
}

func handleLexicon(m *turkmorph.Morphology) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var body struct {
				Line string `json:"line"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Line) == "" {
				writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'line' field")
				return
			}
			added, err := m.AddLine(body.Line)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			if len(added) == 0 {
				writeError(w, http.StatusConflict, "item already in lexicon")
				return
			}
			out := make([]itemJSON, len(added))
			for i, it := range added {
				out[i] = toItemJSON(it)
			}
			writeJSON(w, http.StatusCreated, lexiconResponse{Added: out})
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				writeError(w, http.StatusBadRequest, "missing 'id' query parameter")
				return
			}
			if err := m.RemoveItem(id); err != nil {
				writeError(w, http.StatusNotFound, fmt.Sprintf("item %q not found", id))
				return
			}
			writeJSON(w, http.StatusOK, lexiconResponse{Removed: id})
		default:
			writeError(w, http.StatusMethodNotAllowed, "POST or DELETE required")
		}
	}
}

func handleStats(m *turkmorph.Morphology) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, m.Stats())
	}
}

// newHandler registers the API on a mux and wraps it with CORS.
func newHandler(m *turkmorph.Morphology, origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/list", handleAnalyzeList(m))
	mux.HandleFunc("/api/analyze", handleAnalyze(m))
	mux.HandleFunc("/api/generate", handleGenerate(m))
	mux.HandleFunc("/api/inflection", handleInflection(m))
	mux.HandleFunc("/api/lexicon", handleLexicon(m))
	mux.HandleFunc("/api/stats", handleStats(m))

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	dataDir := flag.String("data", "", "path to the dictionary directory (overrides the configuration)")
	addr := flag.String("addr", "", "listen address (overrides the configuration)")
	flag.Parse()

	cfg, err := turkmorph.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if out, err := cfg.Marshal(); err == nil {
		log.Printf("configuration:\n%s", out)
	}

	log.Printf("loading lexicon from %s …", cfg.DataDir)
	m, err := turkmorph.Load(cfg)
	if err != nil {
		log.Fatalf("failed to load lexicon: %v", err)
	}
	st := m.Stats()
	log.Printf("lexicon loaded: %d items, %d stems, %d surface nodes", st.Items, st.Graph.Stems, st.Graph.SurfaceNodes)

	log.Printf("listening on %s (CORS origins %v)", cfg.Server.Addr, cfg.Server.CORSOrigins)
	if err := http.ListenAndServe(cfg.Server.Addr, newHandler(m, cfg.Server.CORSOrigins)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
