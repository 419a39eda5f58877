package shared

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxPageSize = 100

// Pagination is the 1-based paging input shared by every list operation.
type Pagination struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

func (p Pagination) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Required, validation.Min(1)),
		validation.Field(&p.PageSize, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// WithDefaults fills zero values so query strings may omit paging.
func (p Pagination) WithDefaults(pageSize int) Pagination {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = pageSize
	}
	return p
}

// PagedResult is what paged service calls return.
type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func (r PagedResult[T]) TotalPages() int {
	if r.PageSize == 0 {
		return 0
	}
	return int((r.Total + int64(r.PageSize) - 1) / int64(r.PageSize))
}
