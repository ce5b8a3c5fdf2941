package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"notes-service/internal/application/command"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
	"notes-service/internal/infrastructure"
	"notes-service/internal/infrastructure/db"
	"notes-service/internal/infrastructure/db/dbtest"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []infrastructure.Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email infrastructure.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []infrastructure.NoteEvent
	err    error
}

func (p *fakePublisher) PublishNoteEvent(event infrastructure.NoteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	notes     *NoteService
	users     *UserService
	tags      *TagService
	userRepo  repositories.UserRepository
	noteRepo  repositories.NoteRepository
	tagRepo   repositories.TagRepository
	mailer    *fakeMailer
	publisher *fakePublisher
}

var errBoom = errors.New("boom")

// brokenNoteRepo fails every insert.
type brokenNoteRepo struct {
	repositories.NoteRepository
}

func (r *brokenNoteRepo) Create(context.Context, *entities.ValidatedNote) (*entities.Note, error) {
	return nil, errBoom
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.New(t)
	f := &fixture{
		userRepo:  db.NewUserRepository(gdb),
		noteRepo:  db.NewNoteRepository(gdb),
		tagRepo:   db.NewTagRepository(gdb),
		mailer:    &fakeMailer{},
		publisher: &fakePublisher{},
	}

	log := zerolog.Nop()
	f.notes = NewNoteService(f.noteRepo, f.tagRepo, f.mailer, f.publisher, log).(*NoteService)
	f.users = NewUserService(
		f.userRepo,
		infrastructure.NewRedisServiceWithClient(nil),
		infrastructure.NewJWTService("test-secret", time.Hour),
		infrastructure.NewRateLimiter(time.Minute, 3),
		log,
	).(*UserService)
	f.tags = NewTagService(f.tagRepo).(*TagService)
	return f
}

func (f *fixture) register(t *testing.T, username string) uint {
	t.Helper()
	res, err := f.users.Register(context.Background(), &command.RegisterUserCommand{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return res.Result.Id
}

func (f *fixture) createNote(t *testing.T, owner uint, title, content string) uint {
	t.Helper()
	res, err := f.notes.CreateNote(context.Background(), &command.CreateNoteCommand{
		Title:    title,
		Content:  content,
		UserId:   owner,
		CallerId: owner,
	})
	require.NoError(t, err)
	return res.Id
}

func (f *fixture) createTag(t *testing.T, name string) uint {
	t.Helper()
	res, _, err := f.tags.CreateTag(context.Background(), &command.CreateTagCommand{Name: name})
	require.NoError(t, err)
	return res.Id
}
