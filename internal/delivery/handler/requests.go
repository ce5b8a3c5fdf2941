package handler

type createNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	UserID  uint   `json:"user_id" validate:"required"`
}

// updateNoteRequest fields are optional; a missing field keeps its stored value.
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type listNotesRequest struct {
	Page    int    `query:"page" validate:"omitempty,min=1"`
	PerPage int    `query:"per_page" validate:"omitempty,min=1,max=100"`
	SortBy  string `query:"sort_by" validate:"omitempty,oneof=date title"`
	Order   string `query:"order" validate:"omitempty,oneof=asc desc"`
	Tag     string `query:"tag" validate:"omitempty,max=100"`
}

type shareNoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type autocompleteRequest struct {
	Query string `query:"query" validate:"required,max=64"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FullName       string  `json:"full_name" validate:"required,max=120"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
	Bio            *string `json:"bio" validate:"omitempty,max=500"`
}
