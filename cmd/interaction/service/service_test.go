package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"VidHub.com/cmd/interaction/vote"
	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var notFound = errors.Wrap(gorm.ErrRecordNotFound, "not found")

type memStore struct {
	videos   map[int64]*model.Video
	comments map[int64]*model.Comment
	likes    map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		videos:   make(map[int64]*model.Video),
		comments: make(map[int64]*model.Comment),
		likes:    make(map[string]string),
	}
}

func (m *memStore) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	if v, ok := m.videos[id]; ok {
		return v, nil
	}
	return nil, notFound
}

func (m *memStore) ListByVideo(ctx context.Context, videoId int64) ([]*model.Comment, error) {
	out := make([]*model.Comment, 0)
	for _, c := range m.comments {
		if c.VideoId == videoId {
			out = append(out, c)
		}
	}
	// 与数据库查询一致，按创建时间升序
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.Before(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (m *memStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, notFound
}

func (m *memStore) CreateComment(ctx context.Context, c *model.Comment) error {
	c.Id = utils.NextID()
	c.CreatedAt = time.Now()
	m.comments[c.Id] = c
	m.videos[c.VideoId].CommentCount++
	return nil
}

func (m *memStore) UpdateCommentText(ctx context.Context, id int64, text string) error {
	m.comments[id].Text = text
	return nil
}

func (m *memStore) DeleteComment(ctx context.Context, c *model.Comment) error {
	delete(m.comments, c.Id)
	if v, ok := m.videos[c.VideoId]; ok && v.CommentCount > 0 {
		v.CommentCount--
	}
	return nil
}

func likeKey(uid int64, targetType string, id int64) string {
	return fmt.Sprintf("%s:%d:%d", targetType, uid, id)
}

func (m *memStore) ApplyVote(ctx context.Context, uid int64, targetType string, targetId int64, requested string) (*model.VoteResult, error) {
	key := likeKey(uid, targetType, targetId)
	change := vote.Transition(m.likes[key], requested)
	if change.Type == "" {
		delete(m.likes, key)
	} else {
		m.likes[key] = change.Type
	}
	res := &model.VoteResult{Vote: change.Type}
	if targetType == constants.TargetComment {
		c := m.comments[targetId]
		c.LikeCount, c.DislikeCount = vote.Apply(c.LikeCount, c.DislikeCount, change)
		res.LikeCount, res.DislikeCount = c.LikeCount, c.DislikeCount
	} else {
		v := m.videos[targetId]
		v.LikeCount, v.DislikeCount = vote.Apply(v.LikeCount, v.DislikeCount, change)
		res.LikeCount, res.DislikeCount = v.LikeCount, v.DislikeCount
	}
	return res, nil
}

func (m *memStore) GetVote(ctx context.Context, uid int64, targetType string, targetId int64) (string, error) {
	return m.likes[likeKey(uid, targetType, targetId)], nil
}

type recordingNotifier struct {
	types      []string
	recipients [][]int64
}

func (r *recordingNotifier) Notify(ctx context.Context, n *model.Notification, recipients []int64) error {
	r.types = append(r.types, n.Type)
	r.recipients = append(r.recipients, recipients)
	return nil
}

func comment(id, user, video int64, parent *int64, at time.Time) *model.Comment {
	return &model.Comment{Id: id, UserId: user, VideoId: video, ParentId: parent, CreatedAt: at}
}

func ptr(v int64) *int64 { return &v }

func TestBuildCommentTreeEmpty(t *testing.T) {
	roots := BuildCommentTree(nil, 1)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuildCommentTreeDirectReplies(t *testing.T) {
	base := time.Now()
	comments := []*model.Comment{comment(1, 10, 100, nil, base)}
	const n = 4
	for i := int64(0); i < n; i++ {
		comments = append(comments, comment(2+i, 20, 100, ptr(1), base.Add(time.Duration(i+1)*time.Second)))
	}

	roots := BuildCommentTree(comments, 0)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Replies, n)
	for i, r := range roots[0].Replies {
		assert.Empty(t, r.Replies)
		assert.NotNil(t, r.Replies)
		assert.Equal(t, int64(2+i), r.Id)
		assert.False(t, r.IsOwner)
	}
}

func TestBuildCommentTreeNestingAndOrphans(t *testing.T) {
	base := time.Now()
	comments := []*model.Comment{
		comment(1, 10, 100, nil, base),
		comment(2, 20, 100, nil, base.Add(time.Minute)),
		comment(3, 20, 100, ptr(1), base.Add(2*time.Minute)),
		comment(4, 10, 100, ptr(3), base.Add(3*time.Minute)),
		// 父评论已被删除
		comment(5, 30, 100, ptr(999), base.Add(4*time.Minute)),
	}
	roots := BuildCommentTree(comments, 10)
	require.Len(t, roots, 2)
	assert.Equal(t, int64(2), roots[0].Id)
	assert.Equal(t, int64(1), roots[1].Id)
	assert.True(t, roots[1].IsOwner)
	assert.False(t, roots[0].IsOwner)

	require.Len(t, roots[1].Replies, 1)
	reply := roots[1].Replies[0]
	assert.Equal(t, int64(3), reply.Id)
	require.Len(t, reply.Replies, 1)
	assert.Equal(t, int64(4), reply.Replies[0].Id)
	assert.True(t, reply.Replies[0].IsOwner)

	var walk func(nodes []*model.CommentNode)
	walk = func(nodes []*model.CommentNode) {
		for _, n := range nodes {
			assert.NotEqual(t, int64(5), n.Id)
			walk(n.Replies)
		}
	}
	walk(roots)
}

func TestCommentTreeService(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.videos[100] = &model.Video{Id: 100, UserId: 1, Title: "clip"}
	s := NewCommentService(store, store, nil)

	tree, err := s.Tree(ctx, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, tree.Comments)
	assert.Equal(t, int64(0), tree.Total)

	_, err = s.Tree(ctx, 404, 0)
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)
}

func TestCreateReplyAndNotify(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.videos[100] = &model.Video{Id: 100, UserId: 1, Title: "clip"}
	store.videos[200] = &model.Video{Id: 200, UserId: 1, Title: "other"}
	notifier := &recordingNotifier{}
	s := NewCommentService(store, store, notifier)

	top, err := s.Create(ctx, 2, &CreateCommentRequest{VideoId: 100, Text: " nice "})
	require.NoError(t, err)
	assert.Equal(t, "nice", top.Text)
	assert.Equal(t, int64(1), store.videos[100].CommentCount)

	reply, err := s.Create(ctx, 3, &CreateCommentRequest{ParentId: ptr(top.Id), Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), reply.VideoId)

	assert.Equal(t, []string{constants.NotificationComment, constants.NotificationReply}, notifier.types)
	assert.Equal(t, [][]int64{{1}, {2}}, notifier.recipients)

	_, err = s.Create(ctx, 3, &CreateCommentRequest{VideoId: 200, ParentId: ptr(top.Id), Text: "wrong video"})
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)

	_, err = s.Create(ctx, 3, &CreateCommentRequest{VideoId: 100, Text: "   "})
	assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)

	tree, err := s.Tree(ctx, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tree.Total)
	require.Len(t, tree.Comments[0].Replies, 1)
	assert.True(t, tree.Comments[0].IsOwner)
}

func TestCommentPermissions(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.videos[100] = &model.Video{Id: 100, UserId: 1}
	s := NewCommentService(store, store, nil)

	c, err := s.Create(ctx, 2, &CreateCommentRequest{VideoId: 100, Text: "first"})
	require.NoError(t, err)

	_, err = s.Update(ctx, 3, c.Id, "hacked")
	assert.Equal(t, int64(errno.ForbiddenErrCode), errno.ConvertErr(err).ErrCode)

	updated, err := s.Update(ctx, 2, c.Id, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	err = s.Delete(ctx, 3, c.Id)
	assert.Equal(t, int64(errno.ForbiddenErrCode), errno.ConvertErr(err).ErrCode)

	// 视频作者可以删除别人的评论
	require.NoError(t, s.Delete(ctx, 1, c.Id))
	assert.Equal(t, int64(0), store.videos[100].CommentCount)
}

func TestVideoLikeToggle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.videos[100] = &model.Video{Id: 100, LikeCount: 10, DislikeCount: 4}
	s := NewLikeService(store, store, store)

	res, err := s.VoteVideo(ctx, 7, 100, constants.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, &model.VoteResult{Vote: constants.VoteLike, LikeCount: 11, DislikeCount: 4}, res)

	res, err = s.VoteVideo(ctx, 7, 100, constants.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, &model.VoteResult{Vote: "", LikeCount: 10, DislikeCount: 4}, res)

	_, err = s.VoteVideo(ctx, 7, 100, constants.VoteLike)
	require.NoError(t, err)
	res, err = s.VoteVideo(ctx, 7, 100, constants.VoteDislike)
	require.NoError(t, err)
	assert.Equal(t, &model.VoteResult{Vote: constants.VoteDislike, LikeCount: 10, DislikeCount: 5}, res)

	current, err := s.GetVote(ctx, 7, constants.TargetVideo, 100)
	require.NoError(t, err)
	assert.Equal(t, constants.VoteDislike, current)

	anon, err := s.GetVote(ctx, 0, constants.TargetVideo, 100)
	require.NoError(t, err)
	assert.Equal(t, "", anon)
}

func TestCommentLikeAndErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.videos[100] = &model.Video{Id: 100}
	store.comments[5] = &model.Comment{Id: 5, VideoId: 100}
	s := NewLikeService(store, store, store)

	res, err := s.VoteComment(ctx, 7, 5, constants.VoteDislike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DislikeCount)

	_, err = s.VoteComment(ctx, 7, 6, constants.VoteLike)
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)

	_, err = s.VoteVideo(ctx, 7, 100, "love")
	assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
}
