package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/ai"
	"github.com/harsach/newsportal/internal/comment/model"
	inm "github.com/harsach/newsportal/internal/comment/storage/inmemory"
)

var (
	alice = model.Author{ID: "u-alice", Name: "Alice", TrustLevel: 2}
	bob   = model.Author{ID: "u-bob", Name: "Bob", TrustLevel: 1}
)

func newService() CommentService {
	return New(inm.New(), nil, nil, zerolog.Nop())
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	if _, err := svc.Add(ctx, "p1", model.Author{}, "hello", ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for anonymous author, got %v", err)
	}
	if _, err := svc.Add(ctx, "p1", alice, "   ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank text, got %v", err)
	}
	if _, err := svc.Add(ctx, "", alice, "hello", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty post id, got %v", err)
	}
}

func TestAddParentNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Add(context.Background(), "p1", alice, "hello", "no-such-parent")
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestAddParentFromOtherPost(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	root, err := svc.Add(ctx, "p1", alice, "root", "")
	if err != nil {
		t.Fatalf("add root: %v", err)
	}

	_, err = svc.Add(ctx, "p2", bob, "reply", root.ID)
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound across posts, got %v", err)
	}
}

func TestForestOrdering(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Add(ctx, "p1", alice, "first", "")
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, err := svc.Add(ctx, "p1", bob, "second", "")
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	r1, err := svc.Add(ctx, "p1", bob, "reply one", first.ID)
	if err != nil {
		t.Fatalf("add reply one: %v", err)
	}
	r2, err := svc.Add(ctx, "p1", alice, "reply two", first.ID)
	if err != nil {
		t.Fatalf("add reply two: %v", err)
	}

	forest, err := svc.Forest(ctx, "p1", "")
	if err != nil {
		t.Fatalf("forest: %v", err)
	}

	// top level is newest first
	if len(forest) != 2 || forest[0].ID != second.ID || forest[1].ID != first.ID {
		t.Fatalf("expected [second, first] at top level, got %+v", forest)
	}
	// replies are oldest first
	replies := forest[1].Replies
	if len(replies) != 2 || replies[0].ID != r1.ID || replies[1].ID != r2.ID {
		t.Fatalf("expected replies [one, two], got %+v", replies)
	}
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	root, err := svc.Add(ctx, "p1", alice, "root", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	reply, err := svc.Add(ctx, "p1", bob, "reply", root.ID)
	if err != nil {
		t.Fatalf("add reply: %v", err)
	}

	n, err := svc.ToggleLike(ctx, "p1", reply.ID, bob.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if n.LikeCount != 1 || !n.IsLiked {
		t.Fatalf("expected count 1 liked, got count=%d liked=%v", n.LikeCount, n.IsLiked)
	}

	// another viewer sees the count but not the flag
	forest, err := svc.Forest(ctx, "p1", alice.ID)
	if err != nil {
		t.Fatalf("forest: %v", err)
	}
	got := forest[0].Replies[0]
	if got.LikeCount != 1 || got.IsLiked {
		t.Fatalf("expected count 1 not liked for other viewer, got count=%d liked=%v", got.LikeCount, got.IsLiked)
	}

	// second toggle reverts
	n, err = svc.ToggleLike(ctx, "p1", reply.ID, bob.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if n.LikeCount != 0 || n.IsLiked {
		t.Fatalf("expected toggle to revert, got count=%d liked=%v", n.LikeCount, n.IsLiked)
	}
}

func TestToggleLikeRequiresViewer(t *testing.T) {
	svc := newService()

	if _, err := svc.ToggleLike(context.Background(), "p1", "c1", ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.ToggleLike(context.Background(), "p1", "missing", bob.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeepMutationLeavesSiblingsAlone(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	left, err := svc.Add(ctx, "p1", alice, "left", "")
	if err != nil {
		t.Fatalf("add left: %v", err)
	}
	right, err := svc.Add(ctx, "p1", bob, "right", "")
	if err != nil {
		t.Fatalf("add right: %v", err)
	}

	// grow a chain three levels under left
	cur := left.ID
	for i := 0; i < 3; i++ {
		n, err := svc.Add(ctx, "p1", bob, "deep", cur)
		if err != nil {
			t.Fatalf("add depth %d: %v", i, err)
		}
		cur = n.ID
	}

	before, err := svc.Forest(ctx, "p1", alice.ID)
	if err != nil {
		t.Fatalf("forest before: %v", err)
	}

	if _, err := svc.ToggleLike(ctx, "p1", cur, alice.ID); err != nil {
		t.Fatalf("toggle deep: %v", err)
	}

	after, err := svc.Forest(ctx, "p1", alice.ID)
	if err != nil {
		t.Fatalf("forest after: %v", err)
	}

	// right subtree is byte-for-byte identical, only the deep node changed
	var beforeRight, afterRight model.CommentNode
	for _, n := range before {
		if n.ID == right.ID {
			beforeRight = n
		}
	}
	for _, n := range after {
		if n.ID == right.ID {
			afterRight = n
		}
	}
	if !reflect.DeepEqual(beforeRight, afterRight) {
		t.Fatalf("sibling subtree changed:\nbefore %+v\nafter  %+v", beforeRight, afterRight)
	}
}

func TestReportFlagsComment(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	c, err := svc.Add(ctx, "p1", alice, "dubious claim", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	rep, err := svc.Report(ctx, "p1", c.ID, bob.ID, model.ReasonFake)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.Status != model.ReportOpen || rep.Text != "dubious claim" {
		t.Fatalf("unexpected report %+v", rep)
	}

	forest, err := svc.Forest(ctx, "p1", "")
	if err != nil {
		t.Fatalf("forest: %v", err)
	}
	if forest[0].Status != model.StatusPending {
		t.Fatalf("expected reported comment pending, got %s", forest[0].Status)
	}

	open, err := svc.OpenReports(ctx)
	if err != nil {
		t.Fatalf("open reports: %v", err)
	}
	if len(open) != 1 || open[0].ID != rep.ID {
		t.Fatalf("expected one open report, got %+v", open)
	}

	resolved, err := svc.ResolveReport(ctx, rep.ID, model.ReportResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != model.ReportResolved {
		t.Fatalf("expected resolved, got %s", resolved.Status)
	}

	open, err = svc.OpenReports(ctx)
	if err != nil {
		t.Fatalf("open reports after resolve: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("expected no open reports, got %+v", open)
	}
}

func TestResolveReportValidation(t *testing.T) {
	svc := newService()

	if _, err := svc.ResolveReport(context.Background(), "r1", model.ReportOpen); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput re-opening a report, got %v", err)
	}
	if _, err := svc.ResolveReport(context.Background(), "missing", model.ReportResolved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type rejectingClassifier struct{}

func (rejectingClassifier) ClassifyComment(ctx context.Context, text string) (ai.Classification, error) {
	return ai.Classification{IsApproved: false, Reason: "contains abuse"}, nil
}

type failingClassifier struct{}

func (failingClassifier) ClassifyComment(ctx context.Context, text string) (ai.Classification, error) {
	return ai.Classification{}, errors.New("model unavailable")
}

func TestClassifierSendsCommentToReview(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	svc := New(repo, rejectingClassifier{}, nil, zerolog.Nop())

	c, err := svc.Add(ctx, "p1", alice, "some insult", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// comment is visible immediately, verdict lands async
	if c.Status != model.StatusActive {
		t.Fatalf("expected active on create, got %s", c.Status)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := repo.Get(ctx, "p1", c.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status == model.StatusPending {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("comment never reached pending, status %s", got.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClassifierFailureKeepsCommentActive(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	svc := New(repo, failingClassifier{}, nil, zerolog.Nop())

	c, err := svc.Add(ctx, "p1", alice, "fine comment", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	got, err := repo.Get(ctx, "p1", c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.StatusActive {
		t.Fatalf("expected active after classifier failure, got %s", got.Status)
	}
}

type recordingNotifier struct {
	userID, postID, from string
}

func (n *recordingNotifier) ReplyPosted(userID, postID, fromName string) {
	n.userID, n.postID, n.from = userID, postID, fromName
}

func TestReplyNotifiesParentAuthor(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := New(inm.New(), nil, notifier, zerolog.Nop())

	root, err := svc.Add(ctx, "p1", alice, "root", "")
	if err != nil {
		t.Fatalf("add root: %v", err)
	}
	if _, err := svc.Add(ctx, "p1", bob, "reply", root.ID); err != nil {
		t.Fatalf("add reply: %v", err)
	}

	if notifier.userID != alice.ID || notifier.postID != "p1" || notifier.from != bob.Name {
		t.Fatalf("unexpected notification %+v", notifier)
	}

	// replying to yourself stays quiet
	*notifier = recordingNotifier{}
	if _, err := svc.Add(ctx, "p1", alice, "self reply", root.ID); err != nil {
		t.Fatalf("add self reply: %v", err)
	}
	if notifier.userID != "" {
		t.Fatalf("expected no notification for self reply, got %+v", notifier)
	}
}
