package common

import "time"

type TagResult struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

type NoteResult struct {
	Id      uint         `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Date    time.Time    `json:"date"`
	User    *UserSummary `json:"user"`
	Tags    []TagResult  `json:"tags"`
}

type NoteListItemResult struct {
	Id      uint         `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Date    time.Time    `json:"date"`
	UserId  uint         `json:"user_id"`
	User    *UserSummary `json:"user"`
	Tags    []TagResult  `json:"tags"`
}

type MessageResult struct {
	Message string `json:"message"`
}
