package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/bookmark"
	"github.com/heartmarshall/linkmark-backend/internal/service/summary"
)

type bookmarkServiceMock struct {
	CreateBookmarkFunc  func(ctx context.Context, input bookmark.CreateBookmarkInput) (*domain.Bookmark, error)
	UpdateBookmarkFunc  func(ctx context.Context, input bookmark.UpdateBookmarkInput) (*domain.Bookmark, error)
	DeleteBookmarkFunc  func(ctx context.Context, input bookmark.DeleteBookmarkInput) error
	DeleteBookmarksFunc func(ctx context.Context, input bookmark.DeleteBookmarksInput) ([]uuid.UUID, error)
	UpdateStatusFunc    func(ctx context.Context, input bookmark.UpdateStatusInput) ([]uuid.UUID, error)
	GetBookmarkFunc     func(ctx context.Context, bookmarkID uuid.UUID) (*domain.Bookmark, error)
	ListBookmarksFunc   func(ctx context.Context, filter domain.BookmarkFilter) ([]domain.Bookmark, error)
}

func (m *bookmarkServiceMock) CreateBookmark(ctx context.Context, input bookmark.CreateBookmarkInput) (*domain.Bookmark, error) {
	if m.CreateBookmarkFunc == nil {
		panic("bookmarkServiceMock.CreateBookmarkFunc: method is nil but bookmarkService.CreateBookmark was just called")
	}
	return m.CreateBookmarkFunc(ctx, input)
}

func (m *bookmarkServiceMock) UpdateBookmark(ctx context.Context, input bookmark.UpdateBookmarkInput) (*domain.Bookmark, error) {
	if m.UpdateBookmarkFunc == nil {
		panic("bookmarkServiceMock.UpdateBookmarkFunc: method is nil but bookmarkService.UpdateBookmark was just called")
	}
	return m.UpdateBookmarkFunc(ctx, input)
}

func (m *bookmarkServiceMock) DeleteBookmark(ctx context.Context, input bookmark.DeleteBookmarkInput) error {
	if m.DeleteBookmarkFunc == nil {
		panic("bookmarkServiceMock.DeleteBookmarkFunc: method is nil but bookmarkService.DeleteBookmark was just called")
	}
	return m.DeleteBookmarkFunc(ctx, input)
}

func (m *bookmarkServiceMock) DeleteBookmarks(ctx context.Context, input bookmark.DeleteBookmarksInput) ([]uuid.UUID, error) {
	if m.DeleteBookmarksFunc == nil {
		panic("bookmarkServiceMock.DeleteBookmarksFunc: method is nil but bookmarkService.DeleteBookmarks was just called")
	}
	return m.DeleteBookmarksFunc(ctx, input)
}

func (m *bookmarkServiceMock) UpdateStatus(ctx context.Context, input bookmark.UpdateStatusInput) ([]uuid.UUID, error) {
	if m.UpdateStatusFunc == nil {
		panic("bookmarkServiceMock.UpdateStatusFunc: method is nil but bookmarkService.UpdateStatus was just called")
	}
	return m.UpdateStatusFunc(ctx, input)
}

func (m *bookmarkServiceMock) GetBookmark(ctx context.Context, bookmarkID uuid.UUID) (*domain.Bookmark, error) {
	if m.GetBookmarkFunc == nil {
		panic("bookmarkServiceMock.GetBookmarkFunc: method is nil but bookmarkService.GetBookmark was just called")
	}
	return m.GetBookmarkFunc(ctx, bookmarkID)
}

func (m *bookmarkServiceMock) ListBookmarks(ctx context.Context, filter domain.BookmarkFilter) ([]domain.Bookmark, error) {
	if m.ListBookmarksFunc == nil {
		panic("bookmarkServiceMock.ListBookmarksFunc: method is nil but bookmarkService.ListBookmarks was just called")
	}
	return m.ListBookmarksFunc(ctx, filter)
}

type summaryServiceMock struct {
	GenerateFunc func(ctx context.Context, bookmarkID uuid.UUID) (*summary.Result, error)
}

func (m *summaryServiceMock) Generate(ctx context.Context, bookmarkID uuid.UUID) (*summary.Result, error) {
	if m.GenerateFunc == nil {
		panic("summaryServiceMock.GenerateFunc: method is nil but summaryService.Generate was just called")
	}
	return m.GenerateFunc(ctx, bookmarkID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBookmarkHandler(svc *bookmarkServiceMock, summaries *summaryServiceMock) *BookmarkHandler {
	if svc == nil {
		svc = &bookmarkServiceMock{}
	}
	if summaries == nil {
		summaries = &summaryServiceMock{}
	}
	return NewBookmarkHandler(svc, summaries, testLogger())
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return bytes.NewReader(data)
}

// decodeEnvelope unmarshals the response into the success envelope, failing
// the test when success does not match want.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantSuccess bool, data any) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *errorBody      `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success != wantSuccess {
		t.Fatalf("expected success=%v, got %v (error: %+v)", wantSuccess, env.Success, env.Error)
	}
	if data != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var env struct {
		Success bool       `json:"success"`
		Error   *errorBody `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error == nil {
		t.Fatal("expected error body")
	}
	return *env.Error
}

func TestBookmarkCreate_Success(t *testing.T) {
	t.Parallel()

	bookmarkID := uuid.New()
	svc := &bookmarkServiceMock{
		CreateBookmarkFunc: func(_ context.Context, input bookmark.CreateBookmarkInput) (*domain.Bookmark, error) {
			if input.URL != "https://example.com/post" {
				t.Errorf("unexpected url %q", input.URL)
			}
			if len(input.Tags) != 2 {
				t.Fatalf("expected 2 tag refs, got %d", len(input.Tags))
			}
			if input.Tags[0].ID == nil {
				t.Error("expected first tag ref to carry an id")
			}
			if input.Tags[1].ID != nil || input.Tags[1].Name != "reading" {
				t.Errorf("expected second tag ref to be a name placeholder, got %+v", input.Tags[1])
			}
			return &domain.Bookmark{
				ID:     bookmarkID,
				URL:    input.URL,
				Title:  input.Title,
				Status: domain.WatchStatusUnwatched,
				Tags:   []domain.Tag{},
			}, nil
		},
	}
	h := newBookmarkHandler(svc, nil)

	tagID := uuid.New().String()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks", jsonBody(t, map[string]any{
		"url":   "https://example.com/post",
		"title": "A post",
		"tags": []map[string]any{
			{"id": tagID},
			{"id": "tmp-1", "name": "reading"},
		},
	}))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp bookmarkResponse
	decodeEnvelope(t, rec, true, &resp)
	if resp.ID != bookmarkID.String() {
		t.Errorf("expected id %s, got %s", bookmarkID, resp.ID)
	}
	if resp.Tags == nil {
		t.Error("expected tags to be present, even when empty")
	}
}

func TestBookmarkCreate_InvalidBody(t *testing.T) {
	t.Parallel()

	h := newBookmarkHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Code != "bad_request" {
		t.Errorf("expected code 'bad_request', got %q", body.Code)
	}
}

func TestBookmarkCreate_ValidationErrorCarriesFields(t *testing.T) {
	t.Parallel()

	svc := &bookmarkServiceMock{
		CreateBookmarkFunc: func(_ context.Context, _ bookmark.CreateBookmarkInput) (*domain.Bookmark, error) {
			return nil, domain.NewValidationError("url", "must be a valid http or https URL")
		},
	}
	h := newBookmarkHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks", jsonBody(t, map[string]any{"url": "nope"}))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.Code != "validation_failed" {
		t.Errorf("expected code 'validation_failed', got %q", body.Code)
	}
	if len(body.Fields) != 1 || body.Fields[0].Field != "url" {
		t.Errorf("expected field error on 'url', got %+v", body.Fields)
	}
}

func TestBookmarkGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &bookmarkServiceMock{
		GetBookmarkFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bookmark, error) {
			return nil, fmt.Errorf("get bookmark: %w", domain.ErrNotFound)
		},
	}
	h := newBookmarkHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookmarks/"+uuid.NewString(), nil)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestBookmarkGet_MalformedID(t *testing.T) {
	t.Parallel()

	h := newBookmarkHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookmarks/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBookmarkList_FilterParsing(t *testing.T) {
	t.Parallel()

	categoryID := uuid.New()
	var gotFilter domain.BookmarkFilter
	svc := &bookmarkServiceMock{
		ListBookmarksFunc: func(_ context.Context, filter domain.BookmarkFilter) ([]domain.Bookmark, error) {
			gotFilter = filter
			return []domain.Bookmark{}, nil
		},
	}
	h := newBookmarkHandler(svc, nil)

	target := "/api/v1/bookmarks?search=go&status=watching&categoryId=" + categoryID.String() + "&minRating=3&limit=10&offset=20"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotFilter.Search == nil || *gotFilter.Search != "go" {
		t.Errorf("expected search 'go', got %v", gotFilter.Search)
	}
	if gotFilter.Status == nil || *gotFilter.Status != domain.WatchStatusWatching {
		t.Errorf("expected status watching, got %v", gotFilter.Status)
	}
	if gotFilter.CategoryID == nil || *gotFilter.CategoryID != categoryID {
		t.Errorf("expected category %s, got %v", categoryID, gotFilter.CategoryID)
	}
	if gotFilter.MinRating == nil || *gotFilter.MinRating != 3 {
		t.Errorf("expected minRating 3, got %v", gotFilter.MinRating)
	}
	if gotFilter.Limit != 10 || gotFilter.Offset != 20 {
		t.Errorf("expected limit 10 offset 20, got %d/%d", gotFilter.Limit, gotFilter.Offset)
	}
}

func TestBookmarkList_InvalidStatus(t *testing.T) {
	t.Parallel()

	h := newBookmarkHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookmarks?status=bogus", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Code != "validation_failed" {
		t.Errorf("expected code 'validation_failed', got %q", body.Code)
	}
}

func TestBookmarkUpdate_NilTagsOmitted(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &bookmarkServiceMock{
		UpdateBookmarkFunc: func(_ context.Context, input bookmark.UpdateBookmarkInput) (*domain.Bookmark, error) {
			if input.Tags != nil {
				t.Error("expected tags to stay nil when the field is absent")
			}
			if input.Title == nil || *input.Title != "renamed" {
				t.Errorf("expected title 'renamed', got %v", input.Title)
			}
			return &domain.Bookmark{ID: id, Status: domain.WatchStatusUnwatched, Tags: []domain.Tag{}}, nil
		},
	}
	h := newBookmarkHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookmarks/"+id.String(), jsonBody(t, map[string]any{"title": "renamed"}))
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBookmarkUpdate_EmptyTagListForwarded(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &bookmarkServiceMock{
		UpdateBookmarkFunc: func(_ context.Context, input bookmark.UpdateBookmarkInput) (*domain.Bookmark, error) {
			if input.Tags == nil {
				t.Fatal("expected non-nil tags for an explicit empty list")
			}
			if len(*input.Tags) != 0 {
				t.Errorf("expected empty tag list, got %d refs", len(*input.Tags))
			}
			return &domain.Bookmark{ID: id, Status: domain.WatchStatusUnwatched, Tags: []domain.Tag{}}, nil
		},
	}
	h := newBookmarkHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookmarks/"+id.String(), jsonBody(t, map[string]any{"tags": []any{}}))
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBookmarkBatchStatus_ReturnsUpdatedIDs(t *testing.T) {
	t.Parallel()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	svc := &bookmarkServiceMock{
		UpdateStatusFunc: func(_ context.Context, input bookmark.UpdateStatusInput) ([]uuid.UUID, error) {
			if input.Status != domain.WatchStatusWatched {
				t.Errorf("expected status watched, got %q", input.Status)
			}
			if len(input.BookmarkIDs) != 2 {
				t.Fatalf("expected 2 ids, got %d", len(input.BookmarkIDs))
			}
			return input.BookmarkIDs[:1], nil
		},
	}
	h := newBookmarkHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks/batch/status", jsonBody(t, map[string]any{
		"bookmarkIds": []string{ids[0].String(), ids[1].String()},
		"status":      "watched",
	}))
	rec := httptest.NewRecorder()

	h.BatchStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UpdatedIDs []string `json:"updatedIds"`
	}
	decodeEnvelope(t, rec, true, &resp)
	if len(resp.UpdatedIDs) != 1 || resp.UpdatedIDs[0] != ids[0].String() {
		t.Errorf("expected updatedIds [%s], got %v", ids[0], resp.UpdatedIDs)
	}
}

func TestBookmarkBatchDelete_MalformedID(t *testing.T) {
	t.Parallel()

	h := newBookmarkHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks/batch/delete", jsonBody(t, map[string]any{
		"bookmarkIds": []string{"not-a-uuid"},
	}))
	rec := httptest.NewRecorder()

	h.BatchDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBookmarkDelete_NoContent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &bookmarkServiceMock{
		DeleteBookmarkFunc: func(_ context.Context, input bookmark.DeleteBookmarkInput) error {
			if input.BookmarkID != id {
				t.Errorf("expected id %s, got %s", id, input.BookmarkID)
			}
			return nil
		},
	}
	h := newBookmarkHandler(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookmarks/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestGenerateSummary_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	summaries := &summaryServiceMock{
		GenerateFunc: func(_ context.Context, bookmarkID uuid.UUID) (*summary.Result, error) {
			return &summary.Result{
				BookmarkID: bookmarkID,
				Summary:    "Short recap.",
				Model:      "anthropic/claude",
				CoinsUsed:  1.5,
			}, nil
		},
	}
	h := newBookmarkHandler(nil, summaries)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks/"+id.String()+"/summary", nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.GenerateSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp summaryResponse
	decodeEnvelope(t, rec, true, &resp)
	if resp.Summary != "Short recap." {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
	if resp.CoinsUsed != 1.5 {
		t.Errorf("expected coinsUsed 1.5, got %v", resp.CoinsUsed)
	}
}
