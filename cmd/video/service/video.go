package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/search"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type VideoService struct {
	videos        VideoRepository
	votes         VoteReader
	subscriptions SubscriptionReader
	notifier      Notifier
	indexer       search.Indexer
	now           func() time.Time
}

// NewVideoService indexer 为 nil 时搜索走数据库 LIKE
func NewVideoService(videos VideoRepository, votes VoteReader, subscriptions SubscriptionReader, notifier Notifier, indexer search.Indexer) *VideoService {
	return &VideoService{
		videos:        videos,
		votes:         votes,
		subscriptions: subscriptions,
		notifier:      notifier,
		indexer:       indexer,
		now:           time.Now,
	}
}

func validateType(t string, allowEmpty bool) error {
	if t == "" && allowEmpty {
		return nil
	}
	if t != constants.VideoTypeShort && t != constants.VideoTypeLong {
		return errno.ParamErr.WithMessage("type must be short or long")
	}
	return nil
}

func (s *VideoService) getVideo(ctx context.Context, id int64) (*model.Video, error) {
	video, err := s.videos.GetVideo(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "video")
	}
	return video, nil
}

func (s *VideoService) getOwnedVideo(ctx context.Context, uid, id int64) (*model.Video, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.UserId != uid {
		return nil, errno.ForbiddenErr.WithMessage("you do not own this video")
	}
	return video, nil
}

type CreateVideoRequest struct {
	Title       string
	Description string
	Url         string
	Thumbnail   string
	Visibility  *bool
	CategoryId  *int64
	PlaylistId  *int64
	Tags        []string
	Type        string
	Duration    float64
}

func (s *VideoService) Create(ctx context.Context, uid int64, req *CreateVideoRequest) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Url) == "" {
		return nil, errno.ParamErr.WithMessage("title and url are required")
	}
	if req.Type == "" {
		req.Type = constants.VideoTypeLong
	}
	if err := validateType(req.Type, false); err != nil {
		return nil, err
	}
	if req.Duration < 0 {
		return nil, errno.ParamErr.WithMessage("duration must not be negative")
	}
	if req.CategoryId != nil {
		if _, err := s.videos.GetCategory(ctx, *req.CategoryId); err != nil {
			return nil, notFoundOr(err, "category")
		}
	}
	if req.PlaylistId != nil {
		playlist, err := s.videos.GetPlaylist(ctx, *req.PlaylistId)
		if err != nil {
			return nil, notFoundOr(err, "playlist")
		}
		if playlist.UserId != uid {
			return nil, errno.ForbiddenErr.WithMessage("you do not own this playlist")
		}
	}

	tags, err := s.videos.UpsertTags(ctx, utils.NormalizeTags(req.Tags))
	if err != nil {
		return nil, err
	}
	visible := true
	if req.Visibility != nil {
		visible = *req.Visibility
	}
	now := s.now()
	video := &model.Video{
		Title:       title,
		Description: req.Description,
		Url:         req.Url,
		Thumbnail:   req.Thumbnail,
		Visibility:  visible,
		UserId:      uid,
		CategoryId:  req.CategoryId,
		PlaylistId:  req.PlaylistId,
		Type:        req.Type,
		Duration:    req.Duration,
		PublishDate: &now,
		Tags:        tags,
	}
	if err = s.videos.CreateVideo(ctx, video); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	if req.PlaylistId != nil {
		if err = s.videos.AddPlaylistVideo(ctx, *req.PlaylistId, video.Id); err != nil {
			hlog.CtxErrorf(ctx, "add video %d to playlist failed: %v", video.Id, err)
		}
	}
	s.index(ctx, video)
	if video.Visibility {
		s.notifySubscribers(ctx, video)
	}

	created, err := s.videos.GetVideo(ctx, video.Id)
	if err != nil {
		return video, nil
	}
	return created, nil
}

func (s *VideoService) index(ctx context.Context, video *model.Video) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexVideo(ctx, video); err != nil {
		hlog.CtxErrorf(ctx, "index video %d failed: %v", video.Id, err)
	}
}

func (s *VideoService) notifySubscribers(ctx context.Context, video *model.Video) {
	if s.notifier == nil || s.subscriptions == nil {
		return
	}
	ids, err := s.subscriptions.SubscriberIds(ctx, video.UserId)
	if err != nil {
		hlog.CtxErrorf(ctx, "load subscribers of %d failed: %v", video.UserId, err)
		return
	}
	if len(ids) == 0 {
		return
	}
	videoId := video.Id
	n := &model.Notification{
		SenderId: video.UserId,
		Type:     constants.NotificationNewVideo,
		Message:  fmt.Sprintf("uploaded a new video: %s", video.Title),
		Url:      fmt.Sprintf("/video/%d", video.Id),
		VideoId:  &videoId,
	}
	if err = s.notifier.Notify(ctx, n, ids); err != nil {
		hlog.CtxErrorf(ctx, "notify new video %d failed: %v", video.Id, err)
	}
}

// Get 私有视频只有作者可见
func (s *VideoService) Get(ctx context.Context, requester, id int64) (*model.VideoDetail, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.Visibility && video.UserId != requester {
		return nil, errno.ForbiddenErr.WithMessage("this video is private")
	}
	detail := &model.VideoDetail{Video: video}
	if requester == 0 {
		return detail, nil
	}
	if detail.Vote, err = s.votes.GetVote(ctx, requester, constants.TargetVideo, id); err != nil {
		return nil, err
	}
	if detail.IsFavourite, err = s.videos.IsFavourite(ctx, requester, id); err != nil {
		return nil, err
	}
	if requester != video.UserId && s.subscriptions != nil {
		if detail.IsSubscribed, err = s.subscriptions.IsSubscribed(ctx, requester, video.UserId); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// UpdateVideoRequest nil 字段保持不变
type UpdateVideoRequest struct {
	Title       *string
	Description *string
	Url         *string
	Thumbnail   *string
	Visibility  *bool
	CategoryId  *int64
	Type        *string
	Duration    *float64
	Tags        *[]string
}

func (s *VideoService) Update(ctx context.Context, uid, id int64, req *UpdateVideoRequest) (*model.Video, error) {
	video, err := s.getOwnedVideo(ctx, uid, id)
	if err != nil {
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
	if req.Url != nil {
		if strings.TrimSpace(*req.Url) == "" {
			return nil, errno.ParamErr.WithMessage("url cannot be empty")
		}
		fields["url"] = *req.Url
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Thumbnail != nil {
		fields["thumbnail"] = *req.Thumbnail
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
		if *req.Visibility && video.PublishDate == nil {
			fields["publish_date"] = s.now()
		}
	}
	if req.Type != nil {
		if err = validateType(*req.Type, false); err != nil {
			return nil, err
		}
		fields["type"] = *req.Type
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
	}
	if req.CategoryId != nil {
		if _, err = s.videos.GetCategory(ctx, *req.CategoryId); err != nil {
			return nil, notFoundOr(err, "category")
		}
		fields["category_id"] = *req.CategoryId
	}

	var tags []*model.Tag
	if req.Tags != nil {
		if tags, err = s.videos.UpsertTags(ctx, utils.NormalizeTags(*req.Tags)); err != nil {
			return nil, err
		}
	}
	if err = s.videos.UpdateVideo(ctx, id, fields, tags); err != nil {
		return nil, err
	}
	updated, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	s.index(ctx, updated)
	return updated, nil
}

// Delete 非作者返回 403，记录保持不变
func (s *VideoService) Delete(ctx context.Context, uid, id int64) error {
	if _, err := s.getOwnedVideo(ctx, uid, id); err != nil {
		return err
	}
	if err := s.videos.DeleteVideo(ctx, id); err != nil {
		return err
	}
	if s.indexer != nil {
		if err := s.indexer.DeleteVideo(ctx, id); err != nil {
			hlog.CtxErrorf(ctx, "remove video %d from index failed: %v", id, err)
		}
	}
	return nil
}

type ListVideosRequest struct {
	Type       string
	CategoryId *int64
	Tag        string
	Page       int
	Limit      int
}

type VideoPage struct {
	Videos []*model.Video `json:"videos"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

func newPage(videos []*model.Video, total int64, limit, offset int) *VideoPage {
	return &VideoPage{Videos: videos, Total: total, Page: offset/limit + 1, Limit: limit}
}

func (s *VideoService) List(ctx context.Context, req *ListVideosRequest) (*VideoPage, error) {
	if err := validateType(req.Type, true); err != nil {
		return nil, err
	}
	limit, offset := utils.Page(req.Page, req.Limit)
	videos, total, err := s.videos.ListVideos(ctx, &db.VideoFilter{
		Type:       req.Type,
		CategoryId: req.CategoryId,
		Tag:        utils.NormalizeTag(req.Tag),
		PublicOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}

// ListChannelVideos 作者本人可以看到私有视频
func (s *VideoService) ListChannelVideos(ctx context.Context, requester, channelId int64, page, size int) (*VideoPage, error) {
	limit, offset := utils.Page(page, size)
	videos, total, err := s.videos.ListVideos(ctx, &db.VideoFilter{
		UserId:     &channelId,
		PublicOnly: requester != channelId,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}

// Search ES 不可用时退回数据库模糊匹配
func (s *VideoService) Search(ctx context.Context, keyword, videoType string, page, size int) (*VideoPage, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errno.ParamErr.WithMessage("q is required")
	}
	if err := validateType(videoType, true); err != nil {
		return nil, err
	}
	limit, offset := utils.Page(page, size)
	if s.indexer != nil {
		ids, total, err := s.indexer.SearchVideos(ctx, keyword, videoType, limit, offset)
		if err == nil {
			videos, err := s.videos.GetVideosByIds(ctx, ids)
			if err != nil {
				return nil, err
			}
			return newPage(videos, total, limit, offset), nil
		}
		hlog.CtxWarnf(ctx, "elastic search failed, falling back to database: %v", err)
	}
	videos, total, err := s.videos.ListVideos(ctx, &db.VideoFilter{
		Keyword:    keyword,
		Type:       videoType,
		PublicOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}

// View 浏览数原子加一，登录用户同时记录观看历史
func (s *VideoService) View(ctx context.Context, requester, id int64, duration float64) (int64, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return 0, err
	}
	if !video.Visibility && video.UserId != requester {
		return 0, errno.ForbiddenErr.WithMessage("this video is private")
	}
	views, err := s.videos.IncrementView(ctx, id)
	if err != nil {
		return 0, err
	}
	if requester != 0 {
		if duration < 0 {
			duration = 0
		}
		if err = s.videos.RecordWatch(ctx, requester, id, duration); err != nil {
			hlog.CtxErrorf(ctx, "record watch of video %d failed: %v", id, err)
		}
	}
	return views, nil
}

func (s *VideoService) Liked(ctx context.Context, uid int64, page, size int) (*VideoPage, error) {
	limit, offset := utils.Page(page, size)
	videos, total, err := s.videos.ListLikedVideos(ctx, uid, limit, offset)
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}

// SubscriptionFeed 已订阅频道的公开视频，按发布时间倒序
func (s *VideoService) SubscriptionFeed(ctx context.Context, uid int64, page, size int) (*VideoPage, error) {
	limit, offset := utils.Page(page, size)
	channels, err := s.subscriptions.ChannelIds(ctx, uid)
	if err != nil {
		return nil, err
	}
	videos, total, err := s.videos.ListVideos(ctx, &db.VideoFilter{
		UserIds:     channels,
		PublicOnly:  true,
		OrderByDate: true,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	return newPage(videos, total, limit, offset), nil
}
