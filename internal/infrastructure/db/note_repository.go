package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts title, content and owner only. Date is filled in by gorm's
// autoCreateTime and tags are linked separately.
func (r *NoteRepository) Create(ctx context.Context, note *entities.ValidatedNote) (*entities.Note, error) {
	n := note.GetNote()
	noteModel := NoteModel{
		Title:   n.Title,
		Content: n.Content,
		UserID:  n.UserId,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&noteModel).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, noteModel.ID)
}

func (r *NoteRepository) FindById(ctx context.Context, id uint) (*entities.Note, error) {
	var noteModel NoteModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags", orderTagsByName).
		First(&noteModel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toNoteEntity(&noteModel), nil
}

// Update writes title and content only; owner and date are never touched.
func (r *NoteRepository) Update(ctx context.Context, note *entities.ValidatedNote) (*entities.Note, error) {
	n := note.GetNote()
	err := r.db.WithContext(ctx).
		Model(&NoteModel{ID: n.Id}).
		Updates(map[string]any{"title": n.Title, "content": n.Content}).Error
	if err != nil {
		return nil, err
	}

	return r.FindById(ctx, n.Id)
}

// Delete removes the note and its tag links in one transaction.
func (r *NoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&NoteModel{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&NoteModel{}, id).Error
	})
}

func (r *NoteRepository) List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, int64, error) {
	f := filter.Normalize()
	scope := r.filterScope(f)

	var total int64
	if err := r.db.WithContext(ctx).Model(&NoteModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	notes := make([]*entities.Note, 0, f.PerPage)
	if f.PastEnd(total) {
		return notes, total, nil
	}

	sortColumn := "date"
	if f.SortBy == entities.SortByTitle {
		sortColumn = "title"
	}

	var noteModels []NoteModel
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("User").
		Preload("Tags", orderTagsByName).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "notes", Name: sortColumn}, Desc: f.Descending()}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "notes", Name: "id"}, Desc: f.Descending()}).
		Offset(f.Offset()).
		Limit(f.PerPage).
		Find(&noteModels).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range noteModels {
		notes = append(notes, toNoteEntity(&noteModels[i]))
	}
	return notes, total, nil
}

// filterScope restricts to the owner and, when a tag filter is set, to notes
// carrying at least one tag whose name contains it case-insensitively. The
// subquery keeps each note once even when several of its tags match.
func (r *NoteRepository) filterScope(f entities.NoteFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("notes.user_id = ?", f.UserId)
		if f.Tag == "" {
			return tx
		}

		pattern := "%" + escapeLike(foldTagName(f.Tag)) + "%"
		tagged := r.db.Table("note_tags").
			Select("note_tags.note_id").
			Joins("JOIN tags ON tags.id = note_tags.tag_id").
			Where(`tags.name_folded LIKE ? ESCAPE '\'`, pattern)
		return tx.Where("notes.id IN (?)", tagged)
	}
}

func (r *NoteRepository) AttachTag(ctx context.Context, noteID, tagID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tagModel TagModel
		if err := tx.First(&tagModel, tagID).Error; err != nil {
			return err
		}
		return tx.Model(&NoteModel{ID: noteID}).Association("Tags").Append(&tagModel)
	})
}

func (r *NoteRepository) DetachTag(ctx context.Context, noteID, tagID uint) error {
	return r.db.WithContext(ctx).
		Model(&NoteModel{ID: noteID}).
		Association("Tags").
		Delete(&TagModel{ID: tagID})
}

func orderTagsByName(tx *gorm.DB) *gorm.DB {
	return tx.Order("tags.name")
}

func toNoteEntity(m *NoteModel) *entities.Note {
	note := &entities.Note{
		Id:      m.ID,
		Title:   m.Title,
		Content: m.Content,
		Date:    m.Date,
		UserId:  m.UserID,
		Tags:    make([]entities.Tag, 0, len(m.Tags)),
	}
	if m.User.ID != 0 {
		note.User = toUserEntity(&m.User)
	}
	for _, t := range m.Tags {
		note.Tags = append(note.Tags, entities.Tag{Id: t.ID, Name: t.Name})
	}
	return note
}
