package query

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snipops/snippetd/internal/modules/snippets"
	"github.com/snipops/snippetd/shell"
)

type fakeSearcher struct {
	results []snippets.Snippet
	err     error

	lastTerm string
	lastTop  int
}

func (f *fakeSearcher) SearchSnippets(ctx context.Context, term string, top int) ([]snippets.Snippet, error) {
	f.lastTerm = term
	f.lastTop = top
	return f.results, f.err
}

func newTestApp(t *testing.T, searcher Searcher) *shell.App {
	t.Helper()
	app := shell.NewApp()
	out := shell.NewRegistrar().Apply(context.Background(), app, Module(Config{Searcher: searcher}))
	if !out.OK {
		t.Fatalf("module failed to register: %s", out.Err)
	}
	return app
}

func post(app *shell.App, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func TestModule_LoadFailsWithoutSearcher(t *testing.T) {
	out := shell.NewRegistrar().Apply(context.Background(), shell.NewApp(), Module(Config{}))

	if out.OK {
		t.Fatal("module registered without a searcher, want load failure")
	}
	if out.Kind != shell.FailureLoad {
		t.Errorf("Kind = %v, want %v", out.Kind, shell.FailureLoad)
	}
	if out.Err != ErrNoSearcher.Error() {
		t.Errorf("Err = %q, want %q", out.Err, ErrNoSearcher.Error())
	}
}

func TestSearch(t *testing.T) {
	searcher := &fakeSearcher{results: []snippets.Snippet{
		{ID: "alpha", Name: "alpha", Code: "func alpha() {}"},
	}}
	app := newTestApp(t, searcher)

	rec := post(app, `{"query":"alpha","top":3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if searcher.lastTerm != "alpha" {
		t.Errorf("term = %q, want %q", searcher.lastTerm, "alpha")
	}
	if searcher.lastTop != 3 {
		t.Errorf("top = %d, want 3", searcher.lastTop)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not a Response: %v", err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("count = %d with %d results, want 1 and 1", resp.Count, len(resp.Results))
	}
	if resp.Results[0].Name != "alpha" {
		t.Errorf("result name = %q, want %q", resp.Results[0].Name, "alpha")
	}
}

func TestSearch_DefaultsTop(t *testing.T) {
	searcher := &fakeSearcher{}
	app := newTestApp(t, searcher)

	post(app, `{"query":"alpha"}`)

	if searcher.lastTop != DefaultTop {
		t.Errorf("top = %d, want default %d", searcher.lastTop, DefaultTop)
	}
}

func TestSearch_ClampsTop(t *testing.T) {
	searcher := &fakeSearcher{}
	app := newTestApp(t, searcher)

	post(app, `{"query":"alpha","top":1000}`)

	if searcher.lastTop != MaxTop {
		t.Errorf("top = %d, want clamped %d", searcher.lastTop, MaxTop)
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	app := newTestApp(t, &fakeSearcher{})

	rec := post(app, `{"query":"nothing"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	results, ok := body["results"].([]any)
	if !ok {
		t.Fatalf("results = %v, want a JSON array (not null)", body["results"])
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearch_RejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "SELECT * FROM c"},
		{"empty query", `{"query":""}`},
		{"whitespace query", `{"query":"   "}`},
		{"missing query", `{"top":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newTestApp(t, &fakeSearcher{}), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSearch_BackendError(t *testing.T) {
	app := newTestApp(t, &fakeSearcher{err: errors.New("cosmos unreachable")})

	rec := post(app, `{"query":"alpha"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if body["message"] != "cosmos unreachable" {
		t.Errorf("message = %q, want backend message", body["message"])
	}
}
