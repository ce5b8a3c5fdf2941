package mapper

import (
	"notes-service/internal/application/common"
	"notes-service/internal/domain/entities"
)

func NewNoteResultFromEntity(note *entities.Note) *common.NoteResult {
	return &common.NoteResult{
		Id:      note.Id,
		Title:   note.Title,
		Content: note.Content,
		Date:    note.Date,
		User:    NewUserSummaryFromEntity(note.User),
		Tags:    NewTagResultsFromEntities(note.Tags),
	}
}

func NewNoteListItemResultFromEntity(note *entities.Note) *common.NoteListItemResult {
	return &common.NoteListItemResult{
		Id:      note.Id,
		Title:   note.Title,
		Content: note.Content,
		Date:    note.Date,
		UserId:  note.UserId,
		User:    NewUserSummaryFromEntity(note.User),
		Tags:    NewTagResultsFromEntities(note.Tags),
	}
}

func NewTagResultFromEntity(tag *entities.Tag) *common.TagResult {
	return &common.TagResult{Id: tag.Id, Name: tag.Name}
}

// NewTagResultsFromEntities never returns nil so an untagged note
// serializes as "tags": [].
func NewTagResultsFromEntities(tags []entities.Tag) []common.TagResult {
	results := make([]common.TagResult, 0, len(tags))
	for _, t := range tags {
		results = append(results, common.TagResult{Id: t.Id, Name: t.Name})
	}
	return results
}
