package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string `gorm:"uniqueIndex;not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FullName       string
	ProfilePicture string
	Bio            string
}

func (UserModel) TableName() string {
	return "users"
}

// TagModel keeps a Unicode-lowercased copy of Name for case-insensitive
// filters. SQLite's LOWER only folds ASCII.
type TagModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;not null"`
	NameFolded string `gorm:"index;not null;default:''"`
}

func (TagModel) TableName() string {
	return "tags"
}

func (t *TagModel) BeforeSave(*gorm.DB) error {
	t.NameFolded = foldTagName(t.Name)
	return nil
}

func foldTagName(name string) string {
	return strings.ToLower(name)
}

// NoteModel has no DeletedAt column: deletes are permanent.
type NoteModel struct {
	ID      uint       `gorm:"primaryKey"`
	Title   string     `gorm:"not null"`
	Content string     `gorm:"type:text;not null"`
	Date    time.Time  `gorm:"autoCreateTime;not null;index"`
	UserID  uint       `gorm:"not null;index"`
	User    UserModel  `gorm:"foreignKey:UserID"`
	Tags    []TagModel `gorm:"many2many:note_tags;joinForeignKey:NoteID;joinReferences:TagID"`
}

func (NoteModel) TableName() string {
	return "notes"
}
