package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"VidHub.com/cmd/model"
	"VidHub.com/cmd/video/dal/db"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errNotFound = errors.Wrap(gorm.ErrRecordNotFound, "not found")

// memVideos 只实现用到的方法，其余方法调用会 panic
type memVideos struct {
	VideoRepository
	videos     map[int64]*model.Video
	categories map[int64]*model.Category
	favourites map[[2]int64]bool
	watched    map[[2]int64]float64
	deleted    []int64
}

func newMemVideos() *memVideos {
	return &memVideos{
		videos:     make(map[int64]*model.Video),
		categories: make(map[int64]*model.Category),
		favourites: make(map[[2]int64]bool),
		watched:    make(map[[2]int64]float64),
	}
}

func (m *memVideos) CreateVideo(ctx context.Context, v *model.Video) error {
	v.Id = utils.NextID()
	m.videos[v.Id] = v
	return nil
}

func (m *memVideos) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	if v, ok := m.videos[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, errNotFound
}

func (m *memVideos) GetVideosByIds(ctx context.Context, ids []int64) ([]*model.Video, error) {
	out := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := m.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideos) ListVideos(ctx context.Context, f *db.VideoFilter) ([]*model.Video, int64, error) {
	out := make([]*model.Video, 0)
	for _, v := range m.videos {
		if f.PublicOnly && !v.Visibility {
			continue
		}
		if f.UserId != nil && v.UserId != *f.UserId {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (m *memVideos) ListTrendingCandidates(ctx context.Context, videoType string) ([]*model.Video, error) {
	out := make([]*model.Video, 0)
	for _, v := range m.videos {
		if v.Visibility && (videoType == "" || v.Type == videoType) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideos) UpdateVideo(ctx context.Context, id int64, fields map[string]interface{}, tags []*model.Tag) error {
	v := m.videos[id]
	if title, ok := fields["title"]; ok {
		v.Title = title.(string)
	}
	if vis, ok := fields["visibility"]; ok {
		v.Visibility = vis.(bool)
	}
	if tags != nil {
		v.Tags = tags
	}
	return nil
}

func (m *memVideos) DeleteVideo(ctx context.Context, id int64) error {
	delete(m.videos, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memVideos) IncrementView(ctx context.Context, id int64) (int64, error) {
	m.videos[id].ViewCount++
	return m.videos[id].ViewCount, nil
}

func (m *memVideos) UpsertTags(ctx context.Context, names []string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0, len(names))
	for _, n := range names {
		tags = append(tags, &model.Tag{Id: utils.NextID(), Name: n})
	}
	return tags, nil
}

func (m *memVideos) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (m *memVideos) RecordWatch(ctx context.Context, userId, videoId int64, duration float64) error {
	m.watched[[2]int64{userId, videoId}] = duration
	return nil
}

func (m *memVideos) IsFavourite(ctx context.Context, userId, videoId int64) (bool, error) {
	return m.favourites[[2]int64{userId, videoId}], nil
}

func (m *memVideos) AddFavourite(ctx context.Context, userId, videoId int64) error {
	m.favourites[[2]int64{userId, videoId}] = true
	return nil
}

func (m *memVideos) RemoveFavourite(ctx context.Context, userId, videoId int64) error {
	delete(m.favourites, [2]int64{userId, videoId})
	return nil
}

type noVotes struct{}

func (noVotes) GetVote(ctx context.Context, userId int64, targetType string, targetId int64) (string, error) {
	return constants.VoteLike, nil
}

type subscribers struct {
	ids []int64
}

func (s subscribers) IsSubscribed(ctx context.Context, userId, channelId int64) (bool, error) {
	return true, nil
}

func (s subscribers) SubscriberIds(ctx context.Context, channelId int64) ([]int64, error) {
	return s.ids, nil
}

func (s subscribers) ChannelIds(ctx context.Context, userId int64) ([]int64, error) {
	return nil, nil
}

type recordingNotifier struct {
	mu         sync.Mutex
	recipients [][]int64
}

func (r *recordingNotifier) Notify(ctx context.Context, n *model.Notification, recipients []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipients = append(r.recipients, recipients)
	return nil
}

type failingIndexer struct {
	indexed []int64
}

func (f *failingIndexer) IndexVideo(ctx context.Context, v *model.Video) error {
	f.indexed = append(f.indexed, v.Id)
	return nil
}

func (f *failingIndexer) DeleteVideo(ctx context.Context, id int64) error { return nil }

func (f *failingIndexer) SearchVideos(ctx context.Context, keyword, videoType string, limit, offset int) ([]int64, int64, error) {
	return nil, 0, errors.New("cluster unavailable")
}

func code(err error) int64 {
	return errno.ConvertErr(err).ErrCode
}

func TestTrendingScore(t *testing.T) {
	now := time.Now()
	recent := now.Add(-2 * 24 * time.Hour)
	old := now.Add(-30 * 24 * time.Hour)

	fresh := &model.Video{Id: 1, ViewCount: 100, LikeCount: 10, PublishDate: &recent}
	stale := &model.Video{Id: 2, ViewCount: 100, LikeCount: 10, PublishDate: &old}
	undated := &model.Video{Id: 3, ViewCount: 100, LikeCount: 10}

	assert.Equal(t, int64(130), TrendingScore(fresh, now))
	assert.Equal(t, int64(120), TrendingScore(stale, now))
	assert.Equal(t, int64(120), TrendingScore(undated, now))

	ranked := RankTrending([]*model.Video{undated, stale, fresh}, now, 12, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(1), ranked[0].Id)
	// 同分时发布时间较新的在前，没有发布时间的排最后
	assert.Equal(t, int64(2), ranked[1].Id)
	assert.Equal(t, int64(3), ranked[2].Id)

	page := RankTrending([]*model.Video{undated, stale, fresh}, now, 1, 1)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].Id)
	assert.Empty(t, RankTrending([]*model.Video{fresh}, now, 12, 5))
}

func TestTrendingService(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	now := time.Now()
	recent := now.Add(-time.Hour)
	store.videos[1] = &model.Video{Id: 1, Visibility: true, Type: constants.VideoTypeShort, ViewCount: 5, PublishDate: &recent}
	store.videos[2] = &model.Video{Id: 2, Visibility: true, Type: constants.VideoTypeLong, ViewCount: 50}
	store.videos[3] = &model.Video{Id: 3, Visibility: false, Type: constants.VideoTypeLong, ViewCount: 500}

	s := NewVideoService(store, noVotes{}, subscribers{}, nil, nil)
	all, err := s.Trending(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(2), all[0].Id)

	shorts, err := s.Trending(ctx, constants.VideoTypeShort, 0, 0)
	require.NoError(t, err)
	require.Len(t, shorts, 1)
	assert.Equal(t, int64(15), shorts[0].Score)

	_, err = s.Trending(ctx, "medium", 0, 0)
	assert.Equal(t, int64(errno.ParamErrCode), code(err))
}

func TestCreateVideo(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	notifier := &recordingNotifier{}
	indexer := &failingIndexer{}
	s := NewVideoService(store, noVotes{}, subscribers{ids: []int64{7, 8}}, notifier, indexer)

	_, err := s.Create(ctx, 1, &CreateVideoRequest{Title: "", Url: "http://x"})
	assert.Equal(t, int64(errno.ParamErrCode), code(err))

	_, err = s.Create(ctx, 1, &CreateVideoRequest{Title: "a", Url: "http://x", Type: "medium"})
	assert.Equal(t, int64(errno.ParamErrCode), code(err))

	missing := int64(42)
	_, err = s.Create(ctx, 1, &CreateVideoRequest{Title: "a", Url: "http://x", CategoryId: &missing})
	assert.Equal(t, int64(errno.NotFoundErrCode), code(err))

	v, err := s.Create(ctx, 1, &CreateVideoRequest{Title: " Intro ", Url: "http://x", Tags: []string{"Go", "go ", ""}})
	require.NoError(t, err)
	assert.Equal(t, "Intro", v.Title)
	assert.Equal(t, constants.VideoTypeLong, v.Type)
	assert.True(t, v.Visibility)
	assert.NotNil(t, v.PublishDate)
	assert.Equal(t, []string{"go"}, v.TagNames())
	assert.Equal(t, []int64{v.Id}, indexer.indexed)
	assert.Equal(t, [][]int64{{7, 8}}, notifier.recipients)

	hidden := false
	_, err = s.Create(ctx, 1, &CreateVideoRequest{Title: "draft", Url: "http://y", Visibility: &hidden})
	require.NoError(t, err)
	assert.Len(t, notifier.recipients, 1)
}

func TestDeleteVideoByNonOwner(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	store.videos[10] = &model.Video{Id: 10, UserId: 1, Title: "mine", Visibility: true}
	s := NewVideoService(store, noVotes{}, subscribers{}, nil, nil)

	err := s.Delete(ctx, 2, 10)
	assert.Equal(t, int64(errno.ForbiddenErrCode), code(err))
	require.Contains(t, store.videos, int64(10))
	assert.Equal(t, "mine", store.videos[10].Title)
	assert.Empty(t, store.deleted)

	assert.Equal(t, int64(errno.NotFoundErrCode), code(s.Delete(ctx, 1, 11)))

	require.NoError(t, s.Delete(ctx, 1, 10))
	assert.NotContains(t, store.videos, int64(10))
}

func TestGetAndUpdateVideo(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	store.videos[10] = &model.Video{Id: 10, UserId: 1, Title: "secret", Visibility: false}
	s := NewVideoService(store, noVotes{}, subscribers{}, nil, nil)

	_, err := s.Get(ctx, 0, 10)
	assert.Equal(t, int64(errno.ForbiddenErrCode), code(err))

	detail, err := s.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, constants.VoteLike, detail.Vote)
	assert.False(t, detail.IsSubscribed)

	title := "renamed"
	_, err = s.Update(ctx, 2, 10, &UpdateVideoRequest{Title: &title})
	assert.Equal(t, int64(errno.ForbiddenErrCode), code(err))

	visible := true
	tags := []string{"News"}
	updated, err := s.Update(ctx, 1, 10, &UpdateVideoRequest{Title: &title, Visibility: &visible, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Visibility)
	assert.Equal(t, []string{"news"}, updated.TagNames())

	anon, err := s.Get(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "", anon.Vote)
}

func TestViewAndFavourite(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	store.videos[10] = &model.Video{Id: 10, UserId: 1, Visibility: true}
	s := NewVideoService(store, noVotes{}, subscribers{}, nil, nil)

	views, err := s.View(ctx, 0, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
	assert.Empty(t, store.watched)

	views, err = s.View(ctx, 5, 10, 12.5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)
	assert.Equal(t, 12.5, store.watched[[2]int64{5, 10}])

	status, err := s.ToggleFavourite(ctx, 5, 10)
	require.NoError(t, err)
	assert.True(t, status.Favourite)
	status, err = s.ToggleFavourite(ctx, 5, 10)
	require.NoError(t, err)
	assert.False(t, status.Favourite)

	_, err = s.ToggleFavourite(ctx, 5, 99)
	assert.Equal(t, int64(errno.NotFoundErrCode), code(err))
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	store.videos[10] = &model.Video{Id: 10, Visibility: true, Title: "cats"}
	s := NewVideoService(store, noVotes{}, subscribers{}, nil, &failingIndexer{})

	page, err := s.Search(ctx, "cats", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = s.Search(ctx, "  ", "", 1, 10)
	assert.Equal(t, int64(errno.ParamErrCode), code(err))
}

func TestChannelVideosHidePrivate(t *testing.T) {
	ctx := context.Background()
	store := newMemVideos()
	store.videos[1] = &model.Video{Id: 1, UserId: 3, Visibility: true}
	store.videos[2] = &model.Video{Id: 2, UserId: 3, Visibility: false}
	s := NewVideoService(store, noVotes{}, subscribers{}, nil, nil)

	public, err := s.ListChannelVideos(ctx, 0, 3, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(1), public.Total)

	own, err := s.ListChannelVideos(ctx, 3, 3, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), own.Total)
}

type memPurger struct {
	before time.Time
	calls  int
}

func (m *memPurger) PurgeHistory(ctx context.Context, before time.Time) (int64, error) {
	m.before = before
	m.calls++
	return 3, nil
}

type fakeLocker struct {
	held     bool
	released int
}

func (l *fakeLocker) Lock(ctx context.Context) (func(), error) {
	if l.held {
		return nil, ErrLockHeld
	}
	return func() { l.released++ }, nil
}

func TestHistoryPurgeJob(t *testing.T) {
	ctx := context.Background()
	purger := &memPurger{}
	locker := &fakeLocker{}
	job := NewHistoryPurgeJob(purger, locker, 30*24*time.Hour, time.Hour)
	fixed := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	n, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), purger.before)
	assert.Equal(t, 1, locker.released)

	locker.held = true
	n, err = job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 1, purger.calls)
}

func TestHistoryPurgeJobStopsWithContext(t *testing.T) {
	purger := &memPurger{}
	job := NewHistoryPurgeJob(purger, nil, time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purge job did not stop")
	}
	assert.LessOrEqual(t, purger.calls, 1)
}
