package entities

import (
	"errors"
	"strings"
	"time"
)

type Tag struct {
	Id   uint
	Name string
}

func NewTag(name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("tag name must not be empty")
	}
	return &Tag{Name: name}, nil
}

// Note is owned by exactly one user. Date is assigned by storage on insert
// and UserId never changes after creation.
type Note struct {
	Id      uint
	Title   string
	Content string
	Date    time.Time
	UserId  uint
	User    *User
	Tags    []Tag
}

func NewNote(title, content string, userID uint) *Note {
	return &Note{
		Title:   title,
		Content: content,
		UserId:  userID,
		Tags:    make([]Tag, 0),
	}
}

func (n *Note) validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title must not be empty")
	}
	if strings.TrimSpace(n.Content) == "" {
		return errors.New("content must not be empty")
	}
	if n.UserId == 0 {
		return errors.New("note must have an owner")
	}
	return nil
}

func (n *Note) IsOwnedBy(userID uint) bool {
	return n.UserId == userID
}

// Apply overwrites title and content with the provided values. A nil pointer
// leaves the stored field untouched.
func (n *Note) Apply(title, content *string) {
	if title != nil {
		n.Title = *title
	}
	if content != nil {
		n.Content = *content
	}
}

func (n *Note) HasTag(tagID uint) bool {
	for _, t := range n.Tags {
		if t.Id == tagID {
			return true
		}
	}
	return false
}

type ValidatedNote struct {
	*Note
}

func NewValidatedNote(note *Note) (*ValidatedNote, error) {
	if err := note.validate(); err != nil {
		return nil, err
	}
	return &ValidatedNote{Note: note}, nil
}

func (vn *ValidatedNote) GetNote() *Note {
	return vn.Note
}
