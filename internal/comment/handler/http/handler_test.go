package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/auth"
	handler "github.com/harsach/newsportal/internal/comment/handler/http"
	"github.com/harsach/newsportal/internal/comment/model"
	"github.com/harsach/newsportal/internal/comment/service"
	inm "github.com/harsach/newsportal/internal/comment/storage/inmemory"
	usermodel "github.com/harsach/newsportal/internal/user/model"
)

// fakeSessions resolves fixed tokens so tests can sign in without the user
// service.
type fakeSessions map[string]usermodel.User

func (f fakeSessions) ResolveSession(ctx context.Context, token string) (usermodel.User, error) {
	u, ok := f[token]
	if !ok {
		return usermodel.User{}, errors.New("unknown session")
	}
	return u, nil
}

func newServer() *httptest.Server {
	svc := service.New(inm.New(), nil, nil, zerolog.Nop())
	mux := http.NewServeMux()
	handler.New(svc, zerolog.Nop()).Register(mux)

	sessions := fakeSessions{
		"tok-alice": {ID: "u-alice", Name: "Alice", TrustLevel: 2},
		"tok-bob":   {ID: "u-bob", Name: "Bob", TrustLevel: 1},
		"tok-admin": {ID: "u-admin", Name: "Root", Role: usermodel.RoleAdmin},
	}
	return httptest.NewServer(auth.Middleware(sessions)(mux))
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()

	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCommentLifecycle(t *testing.T) {
	srv := newServer()
	defer srv.Close()

	// root comment
	res := doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments", "tok-alice",
		map[string]any{"text": "root"})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating root, got %d", res.StatusCode)
	}
	root := decode[model.CommentNode](t, res)
	if root.Author.Name != "Alice" || root.Status != model.StatusActive {
		t.Fatalf("unexpected root %+v", root)
	}

	// reply
	res = doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments", "tok-bob",
		map[string]any{"text": "reply", "parent_id": root.ID})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating reply, got %d", res.StatusCode)
	}
	reply := decode[model.CommentNode](t, res)

	// like the reply
	res = doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments/"+reply.ID+"/like", "tok-bob", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 liking, got %d", res.StatusCode)
	}
	liked := decode[model.CommentNode](t, res)
	if liked.LikeCount != 1 || !liked.IsLiked {
		t.Fatalf("expected liked node, got %+v", liked)
	}

	// anonymous read sees the full tree, like counts, no liked flag
	res = doJSON(t, http.MethodGet, srv.URL+"/posts/p1/comments", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d", res.StatusCode)
	}
	page := decode[struct {
		Items []model.CommentNode `json:"items"`
	}](t, res)
	if len(page.Items) != 1 || len(page.Items[0].Replies) != 1 {
		t.Fatalf("unexpected forest %+v", page.Items)
	}
	got := page.Items[0].Replies[0]
	if got.LikeCount != 1 || got.IsLiked {
		t.Fatalf("expected anonymous view count 1 not liked, got %+v", got)
	}
}

func TestCreateRequiresAuth(t *testing.T) {
	srv := newServer()
	defer srv.Close()

	res := doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments", "",
		map[string]any{"text": "anon"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", res.StatusCode)
	}
}

func TestCreateBadRequests(t *testing.T) {
	srv := newServer()
	defer srv.Close()

	// invalid JSON
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/posts/p1/comments", bytes.NewReader([]byte("{bad json")))
	req.Header.Set("Authorization", "Bearer tok-alice")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post bad json: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", res.StatusCode)
	}
	_ = res.Body.Close()

	// blank text
	res = doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments", "tok-alice",
		map[string]any{"text": "   "})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank text, got %d", res.StatusCode)
	}
	_ = res.Body.Close()

	// missing parent
	res = doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments", "tok-alice",
		map[string]any{"text": "hi", "parent_id": "nope"})
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing parent, got %d", res.StatusCode)
	}
	_ = res.Body.Close()
}

func TestModerationRoutes(t *testing.T) {
	srv := newServer()
	defer srv.Close()

	res := doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments", "tok-alice",
		map[string]any{"text": "borderline"})
	c := decode[model.CommentNode](t, res)

	// report as another user
	res = doJSON(t, http.MethodPost, srv.URL+"/posts/p1/comments/"+c.ID+"/report", "tok-bob",
		map[string]any{"reason": "spam"})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 reporting, got %d", res.StatusCode)
	}
	rep := decode[model.Report](t, res)

	// regular users cannot see the queue
	res = doJSON(t, http.MethodGet, srv.URL+"/admin/comment-reports", "tok-bob", nil)
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}
	_ = res.Body.Close()

	res = doJSON(t, http.MethodGet, srv.URL+"/admin/comment-reports", "tok-admin", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 listing reports, got %d", res.StatusCode)
	}
	queue := decode[struct {
		Items []model.Report `json:"items"`
	}](t, res)
	if len(queue.Items) != 1 || queue.Items[0].ID != rep.ID {
		t.Fatalf("unexpected queue %+v", queue.Items)
	}

	// moderator hides the comment and resolves the report
	res = doJSON(t, http.MethodPatch, srv.URL+"/admin/posts/p1/comments/"+c.ID+"/status", "tok-admin",
		map[string]any{"status": "hidden"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 hiding comment, got %d", res.StatusCode)
	}
	hidden := decode[model.CommentNode](t, res)
	if hidden.Status != model.StatusHidden {
		t.Fatalf("expected hidden status, got %s", hidden.Status)
	}

	res = doJSON(t, http.MethodPatch, srv.URL+"/admin/comment-reports/"+rep.ID, "tok-admin",
		map[string]any{"status": "resolved"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 resolving report, got %d", res.StatusCode)
	}
	resolved := decode[model.Report](t, res)
	if resolved.Status != model.ReportResolved {
		t.Fatalf("expected resolved report, got %s", resolved.Status)
	}
}
