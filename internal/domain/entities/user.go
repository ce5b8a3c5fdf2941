package entities

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

type User struct {
	Id             uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string
	Email          string
	Password       string
	FullName       string
	ProfilePicture string
	Bio            string
}

func NewUser(username, email, password string) *User {
	now := time.Now()
	return &User{
		CreatedAt: now,
		UpdatedAt: now,
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Password:  password,
	}
}

func (u *User) validate() error {
	if len(u.Username) < MinUsernameLength {
		return errors.New("username must be at least 3 characters")
	}
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("email must be a valid address")
	}
	if u.Password == "" {
		return errors.New("password must not be empty")
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

func (u *User) HashPassword() error {
	if len(u.Password) < MinPasswordLength {
		return errors.New("password must be at least 6 characters")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// UpdateProfile replaces the editable profile fields. Nil pointers keep the
// stored value.
func (u *User) UpdateProfile(fullName string, profilePicture, bio *string) error {
	if strings.TrimSpace(fullName) == "" {
		return errors.New("full_name must not be empty")
	}
	u.FullName = fullName
	if profilePicture != nil {
		u.ProfilePicture = *profilePicture
	}
	if bio != nil {
		u.Bio = *bio
	}
	u.UpdatedAt = time.Now()
	return u.validate()
}
