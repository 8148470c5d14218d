package announcement

import "time"

type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,notblank,max=255"`
	Content  string `json:"content" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,max=100"`
}

type UpdateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,notblank,max=255"`
	Content  string `json:"content" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,max=100"`
}

type ListParams struct {
	Page     int
	Limit    int
	Audience string
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type AnnouncementResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Audience  string    `json:"audience"`
	AuthorID  string    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListResult is also the cached form of one list page.
type ListResult struct {
	Items []AnnouncementResponse `json:"items"`
	Total int64                  `json:"total"`
}
