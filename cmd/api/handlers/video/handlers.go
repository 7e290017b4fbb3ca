package handlers

import "VidHub.com/cmd/api/handlers/common"

// id 类字段在 json 中以字符串传输，与响应保持一致
type CreateVideoParam struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Url         string   `json:"url"`
	Thumbnail   string   `json:"thumbnail"`
	Visibility  *bool    `json:"visibility"`
	CategoryId  *int64   `json:"category_id,string"`
	PlaylistId  *int64   `json:"playlist_id,string"`
	Tags        []string `json:"tags"`
	Type        string   `json:"type"`
	Duration    float64  `json:"duration"`
}

type UpdateVideoParam struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Url         *string   `json:"url"`
	Thumbnail   *string   `json:"thumbnail"`
	Visibility  *bool     `json:"visibility"`
	CategoryId  *int64    `json:"category_id,string"`
	Type        *string   `json:"type"`
	Duration    *float64  `json:"duration"`
	Tags        *[]string `json:"tags"`
}

type ListVideosParam struct {
	common.PageParam
	Type       string `query:"type"`
	CategoryId string `query:"category_id"`
	Tag        string `query:"tag"`
}

type TrendingParam struct {
	Type  string `query:"type"`
	Limit int    `query:"limit"`
	Skip  int    `query:"skip"`
}

type SearchParam struct {
	common.PageParam
	Q    string `query:"q"`
	Type string `query:"type"`
}

type ViewParam struct {
	Duration float64 `json:"duration"`
}

type PlaylistParam struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Visibility  *bool   `json:"visibility"`
}

type PlaylistVideoParam struct {
	VideoId int64 `json:"video_id,string"`
}

type CategoryParam struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TagParam struct {
	Name string `json:"name"`
}

type ViewData struct {
	Views int64 `json:"views"`
}

type ClearData struct {
	Deleted int64 `json:"deleted"`
}
