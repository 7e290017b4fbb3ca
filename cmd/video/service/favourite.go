package service

import (
	"context"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/utils"
)

type FavouriteStatus struct {
	Favourite bool `json:"favourite"`
}

// ToggleFavourite 已收藏则取消
func (s *VideoService) ToggleFavourite(ctx context.Context, uid, videoId int64) (*FavouriteStatus, error) {
	if _, err := s.getVideo(ctx, videoId); err != nil {
		return nil, err
	}
	fav, err := s.videos.IsFavourite(ctx, uid, videoId)
	if err != nil {
		return nil, err
	}
	if fav {
		err = s.videos.RemoveFavourite(ctx, uid, videoId)
	} else {
		err = s.videos.AddFavourite(ctx, uid, videoId)
	}
	if err != nil {
		return nil, err
	}
	return &FavouriteStatus{Favourite: !fav}, nil
}

func (s *VideoService) Favourites(ctx context.Context, uid int64, page, size int) (*VideoPage, error) {
	limit, offset := utils.Page(page, size)
	videos, total, err := s.videos.ListFavourites(ctx, uid, limit, offset)
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}

type HistoryPage struct {
	Items []*model.HistoryItem `json:"items"`
	Total int64                `json:"total"`
}

func (s *VideoService) History(ctx context.Context, uid int64, page, size int) (*HistoryPage, error) {
	limit, offset := utils.Page(page, size)
	items, total, err := s.videos.ListHistory(ctx, uid, limit, offset)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{Items: items, Total: total}, nil
}

func (s *VideoService) ClearHistory(ctx context.Context, uid int64) (int64, error) {
	return s.videos.ClearHistory(ctx, uid)
}
