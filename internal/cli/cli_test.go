package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"datescore-cli/internal/submit"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// backend is a minimal stand-in for the scoring API.
type backend struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]map[string]any
	keyword  string

	commentStatus int
	commentBody   map[string]any
}

func (b *backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	b.requests = append(b.requests, key)
	if r.Body != nil && r.Method == http.MethodPost {
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err == nil {
			if b.bodies == nil {
				b.bodies = map[string]map[string]any{}
			}
			b.bodies[key] = m
		}
	}
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var testPosts = []map[string]any{
	{"id": 1, "score": 62, "plan": "水族館からディナー", "like_count": 3, "gender": "男性", "cost": "8000円", "age": "25歳", "date_number": "3回目"},
	{"id": 2, "score": 58, "plan": "公園でピクニック", "like_count": 0, "gender": "女性", "cost": "2000円", "age": "22歳", "date_number": "1回目"},
}

func newBackend(t *testing.T) (*backend, string) {
	t.Helper()
	b := &backend{commentStatus: http.StatusOK, commentBody: map[string]any{"message": "ok"}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dates/ranking", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		reply(w, 200, testPosts)
	})
	mux.HandleFunc("GET /api/dates/search", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		b.keyword = r.URL.Query().Get("keyword")
		b.mu.Unlock()
		reply(w, 200, testPosts)
	})
	mux.HandleFunc("POST /api/dates", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		reply(w, 200, map[string]any{
			"score":   62,
			"comment": "良いプランです",
			"plan":    "水族館",
			"detailed_scores": map[string]any{
				"age_appropriateness": 80, "cost_effectiveness": 70, "creativity": 60, "balance": 75, "relationship_progress": 65,
			},
		})
	})
	mux.HandleFunc("GET /api/dates/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		reply(w, 200, map[string]any{"comments": []map[string]any{{"id": 10, "username": "hanako", "comment": "行きたい", "like_count": 1}}})
	})
	mux.HandleFunc("POST /api/dates/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		reply(w, b.commentStatus, b.commentBody)
	})
	mux.HandleFunc("POST /api/plans/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		reply(w, 200, map[string]any{"liked": true, "like_count": 4})
	})
	mux.HandleFunc("GET /api/plans/{id}/like-status", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		reply(w, 200, map[string]any{"liked": false, "like_count": 3})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("DATESCORE_CONFIG_DIR", t.TempDir())
	t.Setenv("DATESCORE_API_URL", "")
	t.Setenv("DATESCORE_FORMAT", "")
	t.Setenv("DATESCORE_LOG_LEVEL", "")
	return b, srv.URL
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Hints []string        `json:"_hints"`
}

func decodeEnvelope(t *testing.T, out []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return env
}

var validSubmitArgs = []string{
	"--age", "25", "--occupation", "会社員", "--gender", "男性", "--date", "2025-08-02",
	"--time-of-day", "夜", "--date-number", "3", "--location", "水族館", "--cost", "3000",
}

func TestRanking_PrintsEnvelope(t *testing.T) {
	_, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "ranking"})
	if err != nil {
		t.Fatalf("ranking: %v\n%s", err, errOut)
	}
	env := decodeEnvelope(t, out)

	var posts []map[string]any
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(posts) != 2 || posts[0]["plan"] != "水族館からディナー" {
		t.Fatalf("unexpected data %+v", posts)
	}
	if env.Meta["total"] != float64(2) {
		t.Fatalf("expected meta.total=2; got %v", env.Meta["total"])
	}
	if len(env.Hints) == 0 || env.Hints[0] != "datescore show 1" {
		t.Fatalf("unexpected hints %v", env.Hints)
	}
}

func TestSearch_SortsByCost(t *testing.T) {
	b, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "search", "水族館", "--sort", "cost"})
	if err != nil {
		t.Fatalf("search: %v\n%s", err, errOut)
	}
	if b.keyword != "水族館" {
		t.Fatalf("expected keyword to be sent; got %q", b.keyword)
	}
	env := decodeEnvelope(t, out)
	var posts []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 2 || posts[1].ID != 1 {
		t.Fatalf("expected cost ascending [2 1]; got %+v", posts)
	}
	if env.Meta["sort"] != "cost" || env.Meta["keyword"] != "水族館" {
		t.Fatalf("unexpected meta %v", env.Meta)
	}
}

func TestSearch_GenderFilter(t *testing.T) {
	_, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "search", "--gender", "女性"})
	if err != nil {
		t.Fatalf("search: %v\n%s", err, errOut)
	}
	env := decodeEnvelope(t, out)
	if env.Meta["total"] != float64(1) || env.Meta["fetched"] != float64(2) {
		t.Fatalf("unexpected meta %v", env.Meta)
	}
}

func TestSearch_SortAndGenderAreExclusive(t *testing.T) {
	_, url := newBackend(t)
	if _, _, err := runCLI(t, []string{"--api-url", url, "search", "--sort", "age", "--gender", "男性"}); err == nil {
		t.Fatalf("expected error for --sort with --gender")
	}
}

func TestSearch_UnknownSortKey(t *testing.T) {
	b, url := newBackend(t)
	if _, _, err := runCLI(t, []string{"--api-url", url, "search", "--sort", "price"}); err == nil {
		t.Fatalf("expected error for unknown sort key")
	}
	if b.count() != 0 {
		t.Fatalf("expected no request; got %d", b.count())
	}
}

func TestSubmit_ValidationFailsWithoutRequest(t *testing.T) {
	b, url := newBackend(t)

	args := append([]string{"--api-url", url, "submit"}, validSubmitArgs...)
	args[4] = "abc" // --age value
	_, errOut, err := runCLI(t, args)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(string(errOut), submit.MsgNumeric) {
		t.Fatalf("expected numeric message on stderr; got %q", errOut)
	}
	if b.count() != 0 {
		t.Fatalf("expected no request; got %v", b.requests)
	}

	_, errOut, err = runCLI(t, []string{"--api-url", url, "submit", "--age", "25"})
	if err == nil || !strings.Contains(string(errOut), submit.MsgRequired) {
		t.Fatalf("expected required message; err=%v stderr=%q", err, errOut)
	}
}

func TestSubmit_PostsDerivedWeekday(t *testing.T) {
	b, url := newBackend(t)

	args := append([]string{"--api-url", url, "submit"}, validSubmitArgs...)
	out, errOut, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("submit: %v\n%s", err, errOut)
	}
	body := b.bodies["POST /api/dates"]
	if body["dayOfWeek"] != "土" || body["timeOfDay"] != "夜" || body["dateNumber"] != "3" {
		t.Fatalf("unexpected request body %v", body)
	}
	env := decodeEnvelope(t, out)
	var res map[string]any
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if res["score"] != float64(62) {
		t.Fatalf("expected score 62; got %v", res["score"])
	}
	details, _ := env.Meta["details"].([]any)
	if len(details) != 5 {
		t.Fatalf("expected 5 detail lines; got %v", env.Meta["details"])
	}
}

func TestCommentsAdd_RejectedDetailOnStderr(t *testing.T) {
	b, url := newBackend(t)
	b.commentStatus = http.StatusBadRequest
	b.commentBody = map[string]any{"detail": "NGワードを含みます"}

	_, errOut, err := runCLI(t, []string{"--api-url", url, "--log-level", "error", "comments", "add", "1", "--username", "taro", "--body", "ひどい"})
	if err == nil {
		t.Fatalf("expected error")
	}
	// The first line is ours; cobra appends its own "Error:" line.
	if first, _, _ := strings.Cut(string(errOut), "\n"); first != "NGワードを含みます" {
		t.Fatalf("expected detail verbatim on stderr; got %q", errOut)
	}
}

func TestCommentsAdd_TrimsAndRefetches(t *testing.T) {
	b, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "comments", "add", "1", "--username", " taro ", "--body", " 素敵 "})
	if err != nil {
		t.Fatalf("comments add: %v\n%s", err, errOut)
	}
	body := b.bodies["POST /api/dates/1/comments"]
	if body["username"] != "taro" || body["comment"] != "素敵" {
		t.Fatalf("expected trimmed body; got %v", body)
	}
	if got := b.requests[len(b.requests)-1]; got != "GET /api/dates/1/comments" {
		t.Fatalf("expected a refetch after posting; last request %q", got)
	}
	env := decodeEnvelope(t, out)
	if env.Meta["total"] != float64(1) {
		t.Fatalf("unexpected meta %v", env.Meta)
	}
}

func TestCommentsAdd_BlankBody(t *testing.T) {
	b, url := newBackend(t)
	_, errOut, err := runCLI(t, []string{"--api-url", url, "comments", "add", "1", "--username", "taro", "--body", "  "})
	if err == nil || !strings.Contains(string(errOut), submit.MsgCommentRequired) {
		t.Fatalf("expected required message; err=%v stderr=%q", err, errOut)
	}
	if b.count() != 0 {
		t.Fatalf("expected no request; got %v", b.requests)
	}
}

func TestLikePlan_TogglesWithPersistedDevice(t *testing.T) {
	b, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "like", "plan", "1"})
	if err != nil {
		t.Fatalf("like: %v\n%s", err, errOut)
	}
	env := decodeEnvelope(t, out)
	var got likeOut
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !got.Liked || got.LikeCount != 4 || got.ID != 1 {
		t.Fatalf("unexpected like output %+v", got)
	}

	sent, _ := b.bodies["POST /api/plans/1/like"]["device_id"].(string)
	if sent == "" {
		t.Fatalf("expected device_id in request body")
	}
	cfg, err := os.ReadFile(filepath.Join(os.Getenv("DATESCORE_CONFIG_DIR"), "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(cfg), sent) {
		t.Fatalf("expected device id %q persisted; config=%s", sent, cfg)
	}
}

func TestLikeStatus(t *testing.T) {
	_, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "like", "status", "plan", "1"})
	if err != nil {
		t.Fatalf("like status: %v\n%s", err, errOut)
	}
	env := decodeEnvelope(t, out)
	var got likeOut
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.Liked || got.LikeCount != 3 {
		t.Fatalf("unexpected status %+v", got)
	}

	if _, _, err := runCLI(t, []string{"--api-url", url, "like", "status", "post", "1"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestDevice_StableAcrossRuns(t *testing.T) {
	newBackend(t)

	read := func() string {
		out, errOut, err := runCLI(t, []string{"device"})
		if err != nil {
			t.Fatalf("device: %v\n%s", err, errOut)
		}
		var data struct {
			DeviceID string `json:"deviceId"`
			Volatile bool   `json:"volatile"`
		}
		if err := json.Unmarshal(decodeEnvelope(t, out).Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Volatile {
			t.Fatalf("expected persisted device id")
		}
		return data.DeviceID
	}
	first := read()
	if first == "" || read() != first {
		t.Fatalf("expected a stable device id")
	}
}

func TestHistory_JournalIsOptIn(t *testing.T) {
	_, url := newBackend(t)

	args := append([]string{"--api-url", url, "submit"}, validSubmitArgs...)
	if _, errOut, err := runCLI(t, args); err != nil {
		t.Fatalf("submit: %v\n%s", err, errOut)
	}
	out, _, err := runCLI(t, []string{"history"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	env := decodeEnvelope(t, out)
	if env.Meta["total"] != float64(0) || env.Meta["enabled"] != false {
		t.Fatalf("expected empty disabled history; got %v", env.Meta)
	}

	args = append([]string{"--journal", "--api-url", url, "submit"}, validSubmitArgs...)
	if _, errOut, err := runCLI(t, args); err != nil {
		t.Fatalf("submit --journal: %v\n%s", err, errOut)
	}
	out, _, err = runCLI(t, []string{"--journal", "history"})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	env = decodeEnvelope(t, out)
	var entries []struct {
		Kind  string `json:"kind"`
		Score *int   `json:"score"`
	}
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != "submission" || entries[0].Score == nil || *entries[0].Score != 62 {
		t.Fatalf("unexpected history %+v", entries)
	}
}

func TestFormat_EDN(t *testing.T) {
	_, url := newBackend(t)

	out, errOut, err := runCLI(t, []string{"--api-url", url, "--format", "edn", "like", "plan", "1"})
	if err != nil {
		t.Fatalf("like: %v\n%s", err, errOut)
	}
	want := "{:data {:id 1 :kind \"plan\" :like-count 4 :liked true}}\n"
	if string(out) != want {
		t.Fatalf("edn output:\n got: %q\nwant: %q", out, want)
	}
}

func TestFormat_Unknown(t *testing.T) {
	newBackend(t)
	if _, _, err := runCLI(t, []string{"--format", "yaml", "device"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestShow_UnknownPlan(t *testing.T) {
	_, url := newBackend(t)
	_, errOut, err := runCLI(t, []string{"--api-url", url, "show", "99"})
	if err == nil || !strings.Contains(string(errOut), "plan not found: 99") {
		t.Fatalf("expected not found; err=%v stderr=%q", err, errOut)
	}
}

func TestShow_PlanWithComments(t *testing.T) {
	_, url := newBackend(t)
	out, errOut, err := runCLI(t, []string{"--api-url", url, "show", "2"})
	if err != nil {
		t.Fatalf("show: %v\n%s", err, errOut)
	}
	env := decodeEnvelope(t, out)
	var data struct {
		Plan struct {
			ID int64 `json:"id"`
		} `json:"plan"`
		Comments []map[string]any `json:"comments"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Plan.ID != 2 || len(data.Comments) != 1 {
		t.Fatalf("unexpected show output %+v", data)
	}
}

func TestDocs_ListsTopicsAndPrintsRaw(t *testing.T) {
	t.Setenv("DATESCORE_CONFIG_DIR", t.TempDir())
	t.Setenv("DATESCORE_FORMAT", "json")

	out, _, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	env := decodeEnvelope(t, out)
	var data struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if len(data.Topics) == 0 || len(env.Hints) == 0 {
		t.Fatalf("expected topics and a hint, got %+v", env)
	}

	out, _, err = runCLI(t, []string{"docs", "submit", "--raw"})
	if err != nil {
		t.Fatalf("docs submit: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("# Scoring a plan")) {
		t.Fatalf("unexpected raw docs output: %q", out)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic to fail")
	}
}
