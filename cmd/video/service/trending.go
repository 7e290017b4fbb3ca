package service

import (
	"context"
	"sort"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
)

// TrendingScore views*1 + likes*2，最近 7 天发布额外加 10；没有发布时间不算近期
func TrendingScore(v *model.Video, now time.Time) int64 {
	score := v.ViewCount*constants.TrendingViewWeight + v.LikeCount*constants.TrendingLikeWeight
	if v.PublishDate != nil && now.Sub(*v.PublishDate) <= constants.TrendingRecentWindow {
		score += constants.TrendingRecencyBonus
	}
	return score
}

// RankTrending 分数降序，同分按发布时间降序，先排序后分页
func RankTrending(videos []*model.Video, now time.Time, limit, skip int) []*model.TrendingVideo {
	ranked := make([]*model.TrendingVideo, 0, len(videos))
	for _, v := range videos {
		ranked = append(ranked, &model.TrendingVideo{Video: v, Score: TrendingScore(v, now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return publishedAfter(ranked[i].PublishDate, ranked[j].PublishDate)
	})
	if skip >= len(ranked) {
		return []*model.TrendingVideo{}
	}
	end := skip + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[skip:end]
}

func publishedAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

func (s *VideoService) Trending(ctx context.Context, videoType string, limit, skip int) ([]*model.TrendingVideo, error) {
	if err := validateType(videoType, true); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	if skip < 0 {
		return nil, errno.ParamErr.WithMessage("skip must not be negative")
	}
	candidates, err := s.videos.ListTrendingCandidates(ctx, videoType)
	if err != nil {
		return nil, err
	}
	return RankTrending(candidates, s.now(), limit, skip), nil
}
