package service

import (
	"github.com/postdeskapp/postdesk-server/internal/domain"
)

// mergeSave overlays the fields present in a partial update onto the stored
// record and returns a fully populated save request. Absent fields keep the
// stored value; present fields, including present-but-empty ones, replace it.
// The caller must re-validate the result under the same rules as a full save.
//
// Contact association is deliberately not merged: it is resolved from the
// original patch request, independently of the title/content/tags overlay.
func mergeSave(rec *domain.PostRecord, patch *domain.PatchPostRequest) (*domain.SavePostRequest, error) {
	tags, err := domain.DecodeTags(rec.TagsJSON)
	if err != nil {
		return nil, err
	}

	merged := &domain.SavePostRequest{
		Title:   rec.Title,
		Content: rec.Content,
		Tags:    tags,
	}

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Content != nil {
		merged.Content = *patch.Content
	}
	if patch.Tags != nil {
		merged.Tags = patch.Tags
	}

	return merged, nil
}
