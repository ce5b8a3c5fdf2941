package interfaces

import (
	"context"

	"notes-service/internal/application/command"
	"notes-service/internal/application/common"
	"notes-service/internal/application/query"
)

type NoteService interface {
	GetNote(ctx context.Context, q *query.GetNoteQuery) (*common.NoteResult, error)
	ListNotes(ctx context.Context, q *query.ListNotesQuery) (*query.NoteListQueryResult, error)
	CreateNote(ctx context.Context, cmd *command.CreateNoteCommand) (*common.NoteResult, error)
	UpdateNote(ctx context.Context, cmd *command.UpdateNoteCommand) (*common.NoteResult, error)
	DeleteNote(ctx context.Context, cmd *command.DeleteNoteCommand) (*common.MessageResult, error)
	AttachTag(ctx context.Context, cmd *command.NoteTagCommand) (*common.MessageResult, error)
	DetachTag(ctx context.Context, cmd *command.NoteTagCommand) (*common.MessageResult, error)
	ShareNote(ctx context.Context, cmd *command.ShareNoteCommand) (*common.MessageResult, error)
}

type UserService interface {
	Register(ctx context.Context, cmd *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error)
	Login(ctx context.Context, cmd *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	Logout(ctx context.Context, cmd *command.LogoutUserCommand) (*common.MessageResult, error)
	Authenticate(ctx context.Context, token string) (uint, error)
	GetProfile(ctx context.Context, userID uint) (*common.ProfileResult, error)
	UpdateProfile(ctx context.Context, cmd *command.UpdateProfileCommand) (*common.ProfileResult, error)
}

type TagService interface {
	CreateTag(ctx context.Context, cmd *command.CreateTagCommand) (*common.TagResult, bool, error)
	Autocomplete(ctx context.Context, q *query.TagAutocompleteQuery) (*query.TagAutocompleteQueryResult, error)
}
