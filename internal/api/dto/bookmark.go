package dto

import "github.com/highcastle01/WSD-Assignment-03/internal/api/model"

type ToggleBookmarkRequest struct {
	TargetType string `json:"targetType"`
	TargetID   int64  `json:"targetId"`
}

type ListBookmarksQuery struct {
	Type  string `form:"type"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type ToggleBookmarkResponse struct {
	Message  string          `json:"message"`
	Action   string          `json:"action"`
	Bookmark *model.Bookmark `json:"bookmark,omitempty"`
}

type BookmarkCheckResponse struct {
	IsBookmarked bool `json:"isBookmarked"`
}
