package utils

// Pagination describes one page of a list response.  The JSON field names
// match what the frontend consumes: total row count, 1-based page number,
// page size, total page count and next/prev availability flags.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Paginate computes pagination metadata for a list of total rows viewed in
// pages of limit entries.  totalPages is ceil(total/limit).
func Paginate(total int64, page, limit int) Pagination {
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
