package command

type CreateNoteCommand struct {
	Title    string
	Content  string
	UserId   uint
	CallerId uint
}

// UpdateNoteCommand carries optional fields; nil means keep the stored value.
type UpdateNoteCommand struct {
	NoteId   uint
	CallerId uint
	Title    *string
	Content  *string
}

type DeleteNoteCommand struct {
	NoteId   uint
	CallerId uint
}

type NoteTagCommand struct {
	NoteId   uint
	TagId    uint
	CallerId uint
}

type ShareNoteCommand struct {
	NoteId   uint
	CallerId uint
	Email    string
}
