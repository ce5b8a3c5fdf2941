package query

import "notes-service/internal/application/common"

type GetNoteQuery struct {
	NoteId   uint
	CallerId uint
}

type ListNotesQuery struct {
	CallerId uint
	Page     int
	PerPage  int
	SortBy   string
	Order    string
	Tag      string
}

type NoteListQueryResult struct {
	Notes      []*common.NoteListItemResult `json:"notes"`
	Page       int                          `json:"page"`
	PerPage    int                          `json:"per_page"`
	TotalPages int                          `json:"total_pages"`
	TotalNotes int64                        `json:"total_notes"`
}
