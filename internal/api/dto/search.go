package dto

import "github.com/highcastle01/WSD-Assignment-03/internal/api/model"

type SaveSearchRequest struct {
	Keyword string         `json:"keyword" binding:"required"`
	Filters map[string]any `json:"filters"`
}

type SearchHistoryResponse struct {
	ListResponse[model.SearchHistory]
	PopularKeywords []model.KeywordCount `json:"popularKeywords"`
}

type ClearSearchResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
