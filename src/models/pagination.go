package models

import (
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const maxPageLimit = 100

// PaginationParams holds paging, search and sort options for list endpoints.
type PaginationParams struct {
	Page   int    `json:"page" query:"page" example:"1"`
	Limit  int    `json:"limit" query:"limit" example:"10"`
	Search string `json:"search" query:"search" example:""`
	SortBy string `json:"sortBy" query:"sortBy" example:"createdAt"`
	Order  string `json:"order" query:"order" example:"desc"` // asc/desc
}

// PaginatedResponse is the envelope returned by list endpoints.
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	TotalPages  int         `json:"totalPages"`
	HasNext     bool        `json:"hasNext"`
	HasPrevious bool        `json:"hasPrevious"`
}

func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:   1,
		Limit:  10,
		Search: "",
		SortBy: "_id",
		Order:  "asc",
	}
}

// Normalize clamps page/limit and fills the sort defaults.
func (p *PaginationParams) Normalize() {
	def := DefaultPagination()
	if p.Page < 1 {
		p.Page = def.Page
	}
	if p.Limit < 1 {
		p.Limit = def.Limit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.SortBy == "" {
		p.SortBy = def.SortBy
	}
	p.Search = strings.TrimSpace(p.Search)
}

func NewPaginatedResponse(data interface{}, total int64, params PaginationParams) *PaginatedResponse {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(params.Limit)))
	}

	return &PaginatedResponse{
		Data:        data,
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}
}

func (p *PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// GetSortOrder builds the bson sort document for Find.
func (p *PaginationParams) GetSortOrder() bson.D {
	order := 1 // 1 = asc, -1 = desc
	if strings.ToLower(p.Order) == "desc" {
		order = -1
	}
	return bson.D{{Key: p.SortBy, Value: order}}
}
