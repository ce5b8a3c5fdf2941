package repositories

import (
	"context"

	"notes-service/internal/domain/entities"
)

// Finders return (nil, nil) when no row matches.

type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uint) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *entities.ValidatedNote) (*entities.Note, error)
	FindById(ctx context.Context, id uint) (*entities.Note, error)
	Update(ctx context.Context, note *entities.ValidatedNote) (*entities.Note, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, int64, error)
	AttachTag(ctx context.Context, noteID, tagID uint) error
	DetachTag(ctx context.Context, noteID, tagID uint) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)
	FindById(ctx context.Context, id uint) (*entities.Tag, error)
	FindByName(ctx context.Context, name string) (*entities.Tag, error)
	SearchNames(ctx context.Context, prefix string, limit int) ([]string, error)
}
