package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"notes-service/internal/apperrors"
	"notes-service/internal/application/command"
	"notes-service/internal/application/common"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/mapper"
	"notes-service/internal/application/query"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
	"notes-service/internal/infrastructure"
)

// NoteEventPublisher is satisfied by *infrastructure.EventPublisher.
type NoteEventPublisher interface {
	PublishNoteEvent(event infrastructure.NoteEvent) error
}

type NoteService struct {
	noteRepo  repositories.NoteRepository
	tagRepo   repositories.TagRepository
	mailer    infrastructure.Mailer
	publisher NoteEventPublisher
	log       zerolog.Logger
}

func NewNoteService(
	noteRepo repositories.NoteRepository,
	tagRepo repositories.TagRepository,
	mailer infrastructure.Mailer,
	publisher NoteEventPublisher,
	log zerolog.Logger,
) interfaces.NoteService {
	return &NoteService{
		noteRepo:  noteRepo,
		tagRepo:   tagRepo,
		mailer:    mailer,
		publisher: publisher,
		log:       log.With().Str("component", "note_service").Logger(),
	}
}

func (s *NoteService) GetNote(ctx context.Context, q *query.GetNoteQuery) (*common.NoteResult, error) {
	note, err := s.findOwnedNote(ctx, q.NoteId, q.CallerId, "view")
	if err != nil {
		return nil, err
	}
	return mapper.NewNoteResultFromEntity(note), nil
}

func (s *NoteService) ListNotes(ctx context.Context, q *query.ListNotesQuery) (*query.NoteListQueryResult, error) {
	filter := entities.NoteFilter{
		UserId:  q.CallerId,
		Page:    q.Page,
		PerPage: q.PerPage,
		SortBy:  q.SortBy,
		Order:   q.Order,
		Tag:     q.Tag,
	}.Normalize()

	notes, total, err := s.noteRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while listing notes.", err)
	}

	items := make([]*common.NoteListItemResult, 0, len(notes))
	for _, n := range notes {
		items = append(items, mapper.NewNoteListItemResultFromEntity(n))
	}

	return &query.NoteListQueryResult{
		Notes:      items,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: entities.TotalPages(total, filter.PerPage),
		TotalNotes: total,
	}, nil
}

func (s *NoteService) CreateNote(ctx context.Context, cmd *command.CreateNoteCommand) (*common.NoteResult, error) {
	if cmd.UserId != cmd.CallerId {
		return nil, apperrors.Forbidden("You are not authorized to create a note for another user.")
	}

	validatedNote, err := entities.NewValidatedNote(entities.NewNote(cmd.Title, cmd.Content, cmd.UserId))
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	created, err := s.noteRepo.Create(ctx, validatedNote)
	if err != nil || created == nil {
		return nil, apperrors.Internal("An error occurred while inserting the note.", err)
	}

	s.publish(infrastructure.EventNoteCreated, created)
	return mapper.NewNoteResultFromEntity(created), nil
}

func (s *NoteService) UpdateNote(ctx context.Context, cmd *command.UpdateNoteCommand) (*common.NoteResult, error) {
	note, err := s.findOwnedNote(ctx, cmd.NoteId, cmd.CallerId, "update")
	if err != nil {
		return nil, err
	}

	note.Apply(cmd.Title, cmd.Content)
	validatedNote, err := entities.NewValidatedNote(note)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	updated, err := s.noteRepo.Update(ctx, validatedNote)
	if err != nil || updated == nil {
		return nil, apperrors.Internal("An error occurred while updating the note.", err)
	}

	s.publish(infrastructure.EventNoteUpdated, updated)
	return mapper.NewNoteResultFromEntity(updated), nil
}

func (s *NoteService) DeleteNote(ctx context.Context, cmd *command.DeleteNoteCommand) (*common.MessageResult, error) {
	note, err := s.findOwnedNote(ctx, cmd.NoteId, cmd.CallerId, "delete")
	if err != nil {
		return nil, err
	}

	if err := s.noteRepo.Delete(ctx, note.Id); err != nil {
		return nil, apperrors.Internal("An error occurred while deleting the note.", err)
	}

	s.publish(infrastructure.EventNoteDeleted, note)
	return &common.MessageResult{Message: "Note deleted."}, nil
}

func (s *NoteService) AttachTag(ctx context.Context, cmd *command.NoteTagCommand) (*common.MessageResult, error) {
	note, err := s.findOwnedNote(ctx, cmd.NoteId, cmd.CallerId, "update")
	if err != nil {
		return nil, err
	}
	if _, err := s.findTag(ctx, cmd.TagId); err != nil {
		return nil, err
	}

	if !note.HasTag(cmd.TagId) {
		if err := s.noteRepo.AttachTag(ctx, note.Id, cmd.TagId); err != nil {
			return nil, apperrors.Internal("An error occurred while tagging the note.", err)
		}
	}
	return &common.MessageResult{Message: "Tag added to note."}, nil
}

func (s *NoteService) DetachTag(ctx context.Context, cmd *command.NoteTagCommand) (*common.MessageResult, error) {
	note, err := s.findOwnedNote(ctx, cmd.NoteId, cmd.CallerId, "update")
	if err != nil {
		return nil, err
	}
	if !note.HasTag(cmd.TagId) {
		return nil, apperrors.NotFound("Tag is not attached to this note.")
	}

	if err := s.noteRepo.DetachTag(ctx, note.Id, cmd.TagId); err != nil {
		return nil, apperrors.Internal("An error occurred while untagging the note.", err)
	}
	return &common.MessageResult{Message: "Tag removed from note."}, nil
}

func (s *NoteService) ShareNote(ctx context.Context, cmd *command.ShareNoteCommand) (*common.MessageResult, error) {
	note, err := s.findOwnedNote(ctx, cmd.NoteId, cmd.CallerId, "share")
	if err != nil {
		return nil, err
	}

	from := "A user"
	if note.User != nil {
		from = note.User.Username
	}
	email := infrastructure.Email{
		To:      cmd.Email,
		Subject: fmt.Sprintf("%s shared a note with you: %s", from, note.Title),
		Text:    fmt.Sprintf("%s\n\n%s", note.Title, note.Content),
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return nil, apperrors.Internal("An error occurred while sending the note.", err)
	}

	s.log.Info().Uint("note_id", note.Id).Str("to", cmd.Email).Msg("note shared")
	return &common.MessageResult{Message: "Note shared."}, nil
}

// findOwnedNote resolves existence before ownership so an absent id is
// always 404 regardless of caller.
func (s *NoteService) findOwnedNote(ctx context.Context, noteID, callerID uint, action string) (*entities.Note, error) {
	note, err := s.noteRepo.FindById(ctx, noteID)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while loading the note.", err)
	}
	if note == nil {
		return nil, apperrors.NotFound("Note not found.")
	}
	if !note.IsOwnedBy(callerID) {
		return nil, apperrors.Forbidden(fmt.Sprintf("You are not authorized to %s this note.", action))
	}
	return note, nil
}

func (s *NoteService) findTag(ctx context.Context, tagID uint) (*entities.Tag, error) {
	tag, err := s.tagRepo.FindById(ctx, tagID)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while loading the tag.", err)
	}
	if tag == nil {
		return nil, apperrors.NotFound("Tag not found.")
	}
	return tag, nil
}

func (s *NoteService) publish(eventType string, note *entities.Note) {
	if s.publisher == nil {
		return
	}
	event := infrastructure.NoteEvent{
		Type:   eventType,
		NoteID: note.Id,
		UserID: note.UserId,
		At:     time.Now().UTC(),
	}
	if err := s.publisher.PublishNoteEvent(event); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Uint("note_id", note.Id).Msg("failed to publish note event")
	}
}
