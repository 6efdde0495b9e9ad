package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

type tagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      *string   `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type bookmarkResponse struct {
	ID           string            `json:"id"`
	URL          string            `json:"url"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	ThumbnailURL *string           `json:"thumbnailUrl,omitempty"`
	CategoryID   *string           `json:"categoryId,omitempty"`
	Category     *categoryResponse `json:"category,omitempty"`
	Rating       int               `json:"rating"`
	Status       string            `json:"status"`
	Notes        *string           `json:"notes,omitempty"`
	AISummary    *string           `json:"aiSummary,omitempty"`
	Tags         []tagResponse     `json:"tags"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type eventResponse struct {
	ID             string    `json:"id"`
	BookmarkID     string    `json:"bookmarkId"`
	Action         string    `json:"action"`
	BookmarkTitle  *string   `json:"bookmarkTitle,omitempty"`
	BookmarkStatus *string   `json:"bookmarkStatus,omitempty"`
	CategoryName   *string   `json:"categoryName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type settingsResponse struct {
	StraicoAPIKeySet bool      `json:"straicoApiKeySet"`
	PreferredModel   string    `json:"preferredModel"`
	UseSmartSelector bool      `json:"useSmartSelector"`
	SelectorPricing  string    `json:"selectorPricing"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toTagResponse(t domain.Tag) tagResponse {
	return tagResponse{ID: t.ID.String(), Name: t.Name}
}

func toTagResponses(tags []domain.Tag) []tagResponse {
	out := make([]tagResponse, len(tags))
	for i, t := range tags {
		out[i] = toTagResponse(t)
	}
	return out
}

func toCategoryResponse(c *domain.Category) *categoryResponse {
	if c == nil {
		return nil
	}
	return &categoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toBookmarkResponse(b *domain.Bookmark) bookmarkResponse {
	resp := bookmarkResponse{
		ID:           b.ID.String(),
		URL:          b.URL,
		Title:        b.Title,
		Description:  b.Description,
		ThumbnailURL: b.ThumbnailURL,
		Category:     toCategoryResponse(b.Category),
		Rating:       b.Rating,
		Status:       string(b.Status),
		Notes:        b.Notes,
		AISummary:    b.AISummary,
		Tags:         toTagResponses(b.Tags),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.CategoryID != nil {
		id := b.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

func toBookmarkResponses(bookmarks []domain.Bookmark) []bookmarkResponse {
	out := make([]bookmarkResponse, len(bookmarks))
	for i := range bookmarks {
		out[i] = toBookmarkResponse(&bookmarks[i])
	}
	return out
}

func toEventResponse(e domain.AnalyticsEntry) eventResponse {
	resp := eventResponse{
		ID:            e.ID.String(),
		BookmarkID:    e.BookmarkID.String(),
		Action:        string(e.Action),
		BookmarkTitle: e.BookmarkTitle,
		CategoryName:  e.CategoryName,
		CreatedAt:     e.CreatedAt,
	}
	if e.BookmarkStatus != nil {
		s := string(*e.BookmarkStatus)
		resp.BookmarkStatus = &s
	}
	return resp
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	return settingsResponse{
		StraicoAPIKeySet: s.StraicoAPIKey != "",
		PreferredModel:   s.PreferredModel,
		UseSmartSelector: s.UseSmartSelector,
		SelectorPricing:  string(s.SelectorPricing),
		UpdatedAt:        s.UpdatedAt,
	}
}

func idListResponse(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// pathUUID parses the {id} path segment.
func pathUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
