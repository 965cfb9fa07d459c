package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageRequest holds pagination, search, and filtering parameters as received
// on the wire. Page is 1-based.
type PageRequest struct {
	Page   int
	Limit  int
	Search string
	Filter map[string]string
}

// Offset returns the record offset for the request.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageMeta is the server-reported pagination metadata. It is the single
// source of truth for pagination controls: clients must not recompute
// PageCount once meta exists.
type PageMeta struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	Total           int64 `json:"total"`
	PageCount       int   `json:"pageCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// PageResult is a page of items plus its metadata.
type PageResult[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}
