package entities

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewValidatedNote(t *testing.T) {
	tests := []struct {
		name    string
		note    *Note
		wantErr string
	}{
		{name: "valid", note: NewNote("A", "x", 1)},
		{name: "blank title", note: NewNote("  ", "x", 1), wantErr: "title"},
		{name: "blank content", note: NewNote("A", "", 1), wantErr: "content"},
		{name: "no owner", note: NewNote("A", "x", 0), wantErr: "owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vn, err := NewValidatedNote(tt.note)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.note, vn.GetNote())
		})
	}
}

func TestNote_ApplyKeepsOmittedFields(t *testing.T) {
	n := NewNote("old title", "old content", 1)

	n.Apply(strPtr("new title"), nil)
	assert.Equal(t, "new title", n.Title)
	assert.Equal(t, "old content", n.Content)

	n.Apply(nil, strPtr("new content"))
	assert.Equal(t, "new title", n.Title)
	assert.Equal(t, "new content", n.Content)

	n.Apply(nil, nil)
	assert.Equal(t, "new title", n.Title)
	assert.Equal(t, "new content", n.Content)
}

func TestNote_OwnershipAndTags(t *testing.T) {
	n := NewNote("A", "x", 1)
	n.Tags = append(n.Tags, Tag{Id: 3, Name: "work"})

	assert.True(t, n.IsOwnedBy(1))
	assert.False(t, n.IsOwnedBy(2))
	assert.True(t, n.HasTag(3))
	assert.False(t, n.HasTag(4))
}

func TestNewTag(t *testing.T) {
	tag, err := NewTag("  work ")
	require.NoError(t, err)
	assert.Equal(t, "work", tag.Name)

	_, err = NewTag("   ")
	assert.Error(t, err)
}

func TestNoteFilter_Normalize(t *testing.T) {
	f := NoteFilter{UserId: 1, PerPage: 500, SortBy: "color", Order: "sideways"}.Normalize()

	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, MaxPerPage, f.PerPage)
	assert.Equal(t, SortByDate, f.SortBy)
	assert.True(t, f.Descending())

	f = NoteFilter{Page: 3, PerPage: 10, SortBy: SortByTitle, Order: OrderAsc}.Normalize()
	assert.Equal(t, 20, f.Offset())
	assert.Equal(t, SortByTitle, f.SortBy)
	assert.False(t, f.Descending())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestNoteFilter_HugePageIsPastEnd(t *testing.T) {
	f := NoteFilter{Page: math.MaxInt, PerPage: 10}.Normalize()

	assert.Equal(t, math.MaxInt, f.Offset())
	assert.True(t, f.PastEnd(1))
	assert.True(t, f.PastEnd(math.MaxInt64))

	f = NoteFilter{Page: 2, PerPage: 10}.Normalize()
	assert.False(t, f.PastEnd(11))
	assert.True(t, f.PastEnd(10))
	assert.True(t, NoteFilter{Page: 1, PerPage: 10}.PastEnd(0))
}

func TestUser_PasswordRoundTrip(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "secret1")
	require.NoError(t, u.HashPassword())

	assert.NotEqual(t, "secret1", u.Password)
	assert.NoError(t, u.CheckPassword("secret1"))
	assert.Error(t, u.CheckPassword("wrong"))
}

func TestUser_HashPasswordRejectsShort(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "123")
	assert.Error(t, u.HashPassword())
}

func TestNewValidatedUser(t *testing.T) {
	_, err := NewValidatedUser(NewUser("al", "al@example.com", "secret1"))
	assert.Error(t, err)

	_, err = NewValidatedUser(NewUser("alice", "not-an-email", "secret1"))
	assert.Error(t, err)

	vu, err := NewValidatedUser(NewUser("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)
	assert.Equal(t, "alice", vu.GetUser().Username)
}

func TestUser_UpdateProfile(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "secret1")
	u.Bio = "old bio"
	before := u.UpdatedAt
	time.Sleep(time.Millisecond)

	require.NoError(t, u.UpdateProfile("Alice Liddell", strPtr("https://img/a.png"), nil))
	assert.Equal(t, "Alice Liddell", u.FullName)
	assert.Equal(t, "https://img/a.png", u.ProfilePicture)
	assert.Equal(t, "old bio", u.Bio)
	assert.True(t, u.UpdatedAt.After(before))

	assert.Error(t, u.UpdateProfile(" ", nil, nil))
}
