package bookmark

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// resolveTags turns client-submitted tag references into persisted tags.
// A reference with an identifier must point at one of the user's tags; a
// reference without one is resolved by case-insensitive name, reusing an
// existing tag before a new row is created. Duplicates resolving to the same
// tag are collapsed.
func (s *Service) resolveTags(ctx context.Context, userID uuid.UUID, refs []domain.TagRef) ([]domain.Tag, error) {
	if len(refs) == 0 {
		return []domain.Tag{}, nil
	}

	resolved := make([]domain.Tag, 0, len(refs))
	seen := make(map[uuid.UUID]struct{}, len(refs))

	for _, ref := range refs {
		var (
			tag *domain.Tag
			err error
		)
		switch {
		case ref.ID != nil && *ref.ID != uuid.Nil:
			tag, err = s.tags.GetByID(ctx, userID, *ref.ID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("tags", fmt.Sprintf("tag %s not found", ref.ID))
			}
		default:
			name := cleanTagName(ref.Name)
			if name == "" {
				return nil, domain.NewValidationError("tags", "tag name required")
			}
			tag, err = s.tags.GetOrCreate(ctx, userID, name)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve tag: %w", err)
		}

		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		resolved = append(resolved, *tag)
	}

	return resolved, nil
}

func tagIDs(tags []domain.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

// cleanTagName trims and collapses inner whitespace while preserving casing.
func cleanTagName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
