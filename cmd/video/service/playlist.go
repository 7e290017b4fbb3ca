package service

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
)

type PlaylistService struct {
	store PlaylistRepository
}

func NewPlaylistService(store PlaylistRepository) *PlaylistService {
	return &PlaylistService{store: store}
}

func (s *PlaylistService) getPlaylist(ctx context.Context, id int64) (*model.Playlist, error) {
	playlist, err := s.store.GetPlaylist(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "playlist")
	}
	return playlist, nil
}

func (s *PlaylistService) getOwned(ctx context.Context, uid, id int64) (*model.Playlist, error) {
	playlist, err := s.getPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.UserId != uid {
		return nil, errno.ForbiddenErr.WithMessage("you do not own this playlist")
	}
	return playlist, nil
}

type PlaylistRequest struct {
	Title       *string
	Description *string
	Visibility  *bool
}

func (s *PlaylistService) Create(ctx context.Context, uid int64, req *PlaylistRequest) (*model.Playlist, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, errno.ParamErr.WithMessage("title is required")
	}
	playlist := &model.Playlist{
		UserId:     uid,
		Title:      strings.TrimSpace(*req.Title),
		Visibility: true,
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.Visibility != nil {
		playlist.Visibility = *req.Visibility
	}
	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	playlist.Videos = []*model.Video{}
	return playlist, nil
}

// Get 私有播放列表只有作者可见，视频按加入顺序返回，其中的私有视频对他人隐藏
func (s *PlaylistService) Get(ctx context.Context, requester, id int64) (*model.Playlist, error) {
	playlist, err := s.getPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := playlist.UserId == requester
	if !playlist.Visibility && !owner {
		return nil, errno.ForbiddenErr.WithMessage("this playlist is private")
	}
	videos, err := s.store.ListPlaylistVideos(ctx, id)
	if err != nil {
		return nil, err
	}
	playlist.Videos = make([]*model.Video, 0, len(videos))
	for _, v := range videos {
		if v.Visibility || v.UserId == requester {
			playlist.Videos = append(playlist.Videos, v)
		}
	}
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, requester, userId int64) ([]*model.Playlist, error) {
	return s.store.ListPlaylistsByUser(ctx, userId, requester == userId)
}

func (s *PlaylistService) Update(ctx context.Context, uid, id int64, req *PlaylistRequest) (*model.Playlist, error) {
	if _, err := s.getOwned(ctx, uid, id); err != nil {
		return nil, err
	}
	fields := make(map[string]interface{})
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errno.ParamErr.WithMessage("title cannot be empty")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}
	if err := s.store.UpdatePlaylist(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.getPlaylist(ctx, id)
}

func (s *PlaylistService) Delete(ctx context.Context, uid, id int64) error {
	if _, err := s.getOwned(ctx, uid, id); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

func (s *PlaylistService) AddVideo(ctx context.Context, uid, id, videoId int64) error {
	if _, err := s.getOwned(ctx, uid, id); err != nil {
		return err
	}
	video, err := s.store.GetVideo(ctx, videoId)
	if err != nil {
		return notFoundOr(err, "video")
	}
	if !video.Visibility && video.UserId != uid {
		return errno.ForbiddenErr.WithMessage("this video is private")
	}
	exists, err := s.store.PlaylistHasVideo(ctx, id, videoId)
	if err != nil {
		return err
	}
	if exists {
		return errno.ConflictErr.WithMessage("video already in playlist")
	}
	return s.store.AddPlaylistVideo(ctx, id, videoId)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, uid, id, videoId int64) error {
	if _, err := s.getOwned(ctx, uid, id); err != nil {
		return err
	}
	removed, err := s.store.RemovePlaylistVideo(ctx, id, videoId)
	if err != nil {
		return err
	}
	if !removed {
		return errno.NotFoundErr.WithMessage("video not in playlist")
	}
	return nil
}
