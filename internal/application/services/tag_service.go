package services

import (
	"context"
	"strings"

	"notes-service/internal/apperrors"
	"notes-service/internal/application/command"
	"notes-service/internal/application/common"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/mapper"
	"notes-service/internal/application/query"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
)

const (
	DefaultAutocompleteLimit = 10
	MaxAutocompleteLimit     = 50
)

type TagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) interfaces.TagService {
	return &TagService{tagRepo: tagRepo}
}

// CreateTag returns the existing tag when the name is taken. The bool
// reports whether a new row was written.
func (s *TagService) CreateTag(ctx context.Context, cmd *command.CreateTagCommand) (*common.TagResult, bool, error) {
	tag, err := entities.NewTag(cmd.Name)
	if err != nil {
		return nil, false, apperrors.Validation(err.Error())
	}

	existing, err := s.tagRepo.FindByName(ctx, tag.Name)
	if err != nil {
		return nil, false, apperrors.Internal("An error occurred while creating the tag.", err)
	}
	if existing != nil {
		return mapper.NewTagResultFromEntity(existing), false, nil
	}

	created, err := s.tagRepo.Create(ctx, tag)
	if err != nil || created == nil {
		return nil, false, apperrors.Internal("An error occurred while creating the tag.", err)
	}
	return mapper.NewTagResultFromEntity(created), true, nil
}

func (s *TagService) Autocomplete(ctx context.Context, q *query.TagAutocompleteQuery) (*query.TagAutocompleteQueryResult, error) {
	prefix := strings.TrimSpace(q.Query)
	if prefix == "" {
		return &query.TagAutocompleteQueryResult{Tags: []string{}}, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultAutocompleteLimit
	}
	if limit > MaxAutocompleteLimit {
		limit = MaxAutocompleteLimit
	}

	names, err := s.tagRepo.SearchNames(ctx, prefix, limit)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while searching tags.", err)
	}
	if names == nil {
		names = []string{}
	}
	return &query.TagAutocompleteQueryResult{Tags: names}, nil
}
