package types

// Page - параметры запрошенной страницы.
type Page struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

func NewPagination(total uint64, p Page) Pagination {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + uint64(p.Limit) - 1) / uint64(p.Limit))
	}
	return Pagination{TotalCount: total, TotalPages: totalPages, Page: p.Page, Limit: p.Limit}
}
