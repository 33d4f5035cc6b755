package board

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"shui/internal/domain"
)

type fakeAPI struct {
	messages   []domain.Message
	listErr    error
	createErr  error
	updateErr  error
	searchErr  error
	calls      []string
	lastUpdate string
}

func (f *fakeAPI) GetMessages(context.Context) ([]domain.Message, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Message(nil), f.messages...), nil
}

func (f *fakeAPI) CreateMessage(_ context.Context, username, text string) (domain.Message, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return domain.Message{}, f.createErr
	}
	msg := domain.Message{ID: "new", Username: username, Text: text, CreatedAt: base.Add(time.Hour)}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeAPI) UpdateMessage(_ context.Context, id, text string) (domain.Message, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return domain.Message{}, f.updateErr
	}
	f.lastUpdate = id + "=" + text
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Text = text
			return f.messages[i], nil
		}
	}
	return domain.Message{}, errors.New("not found")
}

func (f *fakeAPI) GetMessagesByUser(_ context.Context, username string) ([]domain.Message, error) {
	f.calls = append(f.calls, "search")
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []domain.Message
	for _, m := range f.messages {
		if m.Username == username {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestBoardRefresh(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())

	b.Refresh(context.Background())
	if !equalIDs(b.State().Messages, "m3", "m2", "m1") {
		t.Fatalf("unexpected messages: %v", ids(b.State().Messages))
	}

	api.listErr = errors.New("offline")
	b.Refresh(context.Background())
	if b.State().Error != ErrFetch {
		t.Fatalf("expected fetch error, got %q", b.State().Error)
	}
}

func TestBoardSubmit(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())

	b.Submit(context.Background(), "", "hi")
	if len(api.calls) != 0 {
		t.Fatalf("expected no network call for incomplete form, got %v", api.calls)
	}

	b.Submit(context.Background(), "linus", "hello")
	if strings.Join(api.calls, ",") != "create,list" {
		t.Fatalf("expected create then list, got %v", api.calls)
	}
	s := b.State()
	if s.DraftUsername != "" || s.DraftText != "" {
		t.Fatalf("expected draft cleared")
	}
	if len(s.Messages) != 4 || s.Messages[0].ID != "new" {
		t.Fatalf("expected refreshed list with new message first, got %v", ids(s.Messages))
	}
}

func TestBoardSubmit_Failure(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("500")}
	b := New(api, zap.NewNop())

	b.Submit(context.Background(), "ada", "hi")
	s := b.State()
	if s.Error != ErrCreate {
		t.Fatalf("expected create error, got %q", s.Error)
	}
	if s.DraftUsername != "ada" || s.DraftText != "hi" {
		t.Fatalf("expected draft kept after failure")
	}
}

func TestBoardEditFlow(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	ctx := context.Background()
	b.Refresh(ctx)

	if !b.StartEdit("m1") {
		t.Fatalf("expected m1 to be editable")
	}
	b.SetEditText("edited")
	b.SaveEdit(ctx)

	if api.lastUpdate != "m1=edited" {
		t.Fatalf("unexpected update call: %q", api.lastUpdate)
	}
	s := b.State()
	if s.EditID != "" {
		t.Fatalf("expected edit mode left")
	}
	for _, m := range s.Messages {
		if m.ID == "m1" && m.Text != "edited" {
			t.Fatalf("expected refreshed text, got %q", m.Text)
		}
	}
}

func TestBoardStartEdit_SwitchDiscardsPreviousEdit(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	ctx := context.Background()
	b.Refresh(ctx)

	b.StartEdit("m1")
	b.SetEditText("never saved")
	b.StartEdit("m3")
	if s := b.State(); s.EditID != "m3" || s.EditText != "third" {
		t.Fatalf("expected m3 in edit mode with its own text, got %+v", s)
	}

	b.SaveEdit(ctx)
	if api.lastUpdate != "m3=third" {
		t.Fatalf("expected only m3 to be saved, got %q", api.lastUpdate)
	}
}

func TestBoardCancelEdit_NoNetwork(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	b.Refresh(context.Background())
	api.calls = nil

	b.StartEdit("m2")
	b.SetEditText("draft")
	b.CancelEdit()
	b.SaveEdit(context.Background())

	if len(api.calls) != 0 {
		t.Fatalf("expected no network calls, got %v", api.calls)
	}
	if b.StartEdit("unknown") {
		t.Fatalf("expected unknown id to be rejected")
	}
}

func TestBoardSaveEdit_Failure(t *testing.T) {
	api := &fakeAPI{messages: sample(), updateErr: errors.New("404")}
	b := New(api, zap.NewNop())
	b.Refresh(context.Background())
	b.StartEdit("m1")
	b.SaveEdit(context.Background())

	s := b.State()
	if s.Error != ErrUpdate {
		t.Fatalf("expected update error, got %q", s.Error)
	}
	if s.EditID != "m1" {
		t.Fatalf("expected to stay in edit mode after failure")
	}
}

func TestBoardSearch(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	ctx := context.Background()

	b.Search(ctx, "ada")
	if !equalIDs(b.State().Messages, "m2", "m1") {
		t.Fatalf("unexpected search result: %v", ids(b.State().Messages))
	}

	b.Search(ctx, "nobody")
	if b.State().Error != NoResults || len(b.State().Messages) != 0 {
		t.Fatalf("expected no-results state, got %+v", b.State())
	}

	api.calls = nil
	b.Search(ctx, "")
	if strings.Join(api.calls, ",") != "list" {
		t.Fatalf("expected empty search to list all, got %v", api.calls)
	}
	if b.State().Error != "" || len(b.State().Messages) != 3 {
		t.Fatalf("expected full list, got %+v", b.State())
	}

	api.searchErr = errors.New("boom")
	b.Search(ctx, "ada")
	if b.State().Error != ErrSearch {
		t.Fatalf("expected search error, got %q", b.State().Error)
	}
}

func TestBoardSubmitAfterSearch_ShowsAllMessages(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	ctx := context.Background()

	b.Search(ctx, "ada")
	b.Submit(ctx, "grace", "yo")

	s := b.State()
	if s.Search != "" {
		t.Fatalf("expected search cleared after full refresh, got %q", s.Search)
	}
	if len(s.Messages) != 4 {
		t.Fatalf("expected full list, got %v", ids(s.Messages))
	}

	var buf bytes.Buffer
	Render(&buf, s)
	out := buf.String()
	if !strings.Contains(out, "All messages (Newest first)") {
		t.Fatalf("expected all-messages header, got:\n%s", out)
	}
	if strings.Contains(out, `Messages by "ada"`) {
		t.Fatalf("unexpected filtered header over the full list:\n%s", out)
	}
}

func TestBoardSaveEditAfterSearch_ShowsAllMessages(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	ctx := context.Background()

	b.Search(ctx, "ada")
	b.StartEdit("m1")
	b.SetEditText("edited")
	b.SaveEdit(ctx)

	if b.State().Search != "" || len(b.State().Messages) != 3 {
		t.Fatalf("expected unfiltered list after save, got %+v", b.State())
	}
}

func TestBoardToggleSort_NoNetwork(t *testing.T) {
	api := &fakeAPI{messages: sample()}
	b := New(api, zap.NewNop())
	b.Refresh(context.Background())
	api.calls = nil

	b.ToggleSort()
	if len(api.calls) != 0 {
		t.Fatalf("expected no network calls, got %v", api.calls)
	}
	if !equalIDs(b.State().Messages, "m1", "m2", "m3") {
		t.Fatalf("unexpected order: %v", ids(b.State().Messages))
	}
}

func TestRender(t *testing.T) {
	msgs := sample()
	s := NewState().Loaded(msgs).StartEdit(msgs[0]).SetEditText("draft text").SearchFailed()

	var buf bytes.Buffer
	Render(&buf, s)
	out := buf.String()

	for _, want := range []string{ErrSearch, "All messages (Newest first)", "grace", "[editing] draft text", "second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2025, 3, 4, 5, 6, 0, 0, time.Local))
	if got != "Tuesday 4 Mar 05:06" {
		t.Fatalf("unexpected date format: %q", got)
	}
}
