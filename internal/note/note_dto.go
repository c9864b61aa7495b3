package note

type CreateNoteRequest struct {
	PageKey string `json:"page_key" binding:"required"`
	Body    string `json:"body" binding:"required"`
	Color   string `json:"color"`
}

type UpdateNoteRequest struct {
	Body  string `json:"body" binding:"required"`
	Color string `json:"color"`
}

type NoteResponse struct {
	ID        string `json:"id"`
	PageKey   string `json:"page_key"`
	Body      string `json:"body"`
	Color     string `json:"color,omitempty"`
	AuthorID  string `json:"author_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
