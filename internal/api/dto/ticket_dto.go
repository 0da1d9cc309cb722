package dto

// CreateTicketRequest payload for POST /tickets.
type CreateTicketRequest struct {
	Title string `json:"title"`
}

// AddCommentRequest payload for POST .../tickets/:id/comments.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// ListQuery carries the pagination query string of listing endpoints.
// OrderBy also accepts the "field,direction" form.
type ListQuery struct {
	Page    string `query:"page"`
	PerPage string `query:"per_page"`
	OrderBy string `query:"order_by"`
	Order   string `query:"order"`
}
