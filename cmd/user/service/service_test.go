package service

import (
	"context"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oauth"
	"VidHub.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers struct {
	byId map[int64]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byId: make(map[int64]*model.User)}
}

func (f *fakeUsers) CreateUser(ctx context.Context, user *model.User) error {
	if user.Id == 0 {
		user.Id = utils.NextID()
	}
	copied := *user
	f.byId[user.Id] = &copied
	return nil
}

func (f *fakeUsers) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := f.byId[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errors.Wrap(gorm.ErrRecordNotFound, "not found")
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.byId {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.Wrap(gorm.ErrRecordNotFound, "not found")
}

func (f *fakeUsers) GetUserByGoogleId(ctx context.Context, googleId string) (*model.User, error) {
	for _, u := range f.byId {
		if u.GoogleId != nil && *u.GoogleId == googleId {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.Wrap(gorm.ErrRecordNotFound, "not found")
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) error {
	u := f.byId[id]
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "avatar":
			u.Avatar = v.(string)
		case "background":
			u.Background = v.(string)
		case "description":
			u.Description = v.(string)
		}
	}
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.byId[id].Password = hash
	return nil
}

func (f *fakeUsers) LinkGoogle(ctx context.Context, id int64, googleId string) error {
	f.byId[id].GoogleId = &googleId
	return nil
}

type fakeProvider struct {
	profile *oauth.GoogleUser
}

func (p fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example/auth?state=" + state
}

func (p fakeProvider) Exchange(ctx context.Context, code string) (*oauth.GoogleUser, error) {
	return p.profile, nil
}

type fakeCounters struct {
	subscribers int64
	subscribed  bool
	videos      map[bool]int64
}

func (f fakeCounters) CountSubscribers(ctx context.Context, channelId int64) (int64, error) {
	return f.subscribers, nil
}

func (f fakeCounters) IsSubscribed(ctx context.Context, userId, channelId int64) (bool, error) {
	return f.subscribed, nil
}

func (f fakeCounters) CountUserVideos(ctx context.Context, userId int64, includePrivate bool) (int64, error) {
	return f.videos[includePrivate], nil
}

func assertCode(t *testing.T, err error, code int64) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errno.ConvertErr(err).ErrCode)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := NewAuthService(newFakeUsers())

	user, err := s.Register(ctx, &RegisterRequest{Name: "alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = s.Register(ctx, &RegisterRequest{Name: "alice2", Email: "alice@example.com", Password: "secret1"})
	assertCode(t, err, errno.ConflictErrCode)

	_, err = s.Register(ctx, &RegisterRequest{Name: "bob", Email: "bob@example.com", Password: "123"})
	assertCode(t, err, errno.ParamErrCode)

	logged, err := s.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.Id, logged.Id)

	_, err = s.Login(ctx, "alice@example.com", "wrong!!")
	assertCode(t, err, errno.AuthorizationFailedCode)

	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assertCode(t, err, errno.AuthorizationFailedCode)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s := NewAuthService(newFakeUsers())
	user, err := s.Register(ctx, &RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	assertCode(t, s.ChangePassword(ctx, user.Id, "bad-old", "secret2"), errno.AuthorizationFailedCode)
	require.NoError(t, s.ChangePassword(ctx, user.Id, "secret1", "secret2"))

	_, err = s.Login(ctx, "alice@example.com", "secret2")
	assert.NoError(t, err)
}

func TestOAuthLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	s := NewAuthService(users)

	// 新用户
	p := fakeProvider{profile: &oauth.GoogleUser{Sub: "g-1", Email: "carol@example.com", EmailVerified: true, Name: "Carol"}}
	created, err := s.OAuthLogin(ctx, p, "code")
	require.NoError(t, err)
	assert.False(t, created.HasPassword())

	again, err := s.OAuthLogin(ctx, p, "code")
	require.NoError(t, err)
	assert.Equal(t, created.Id, again.Id)

	// 本地账号按邮箱关联
	local, err := s.Register(ctx, &RegisterRequest{Name: "dave", Email: "dave@example.com", Password: "secret1"})
	require.NoError(t, err)
	// 邮箱未验证时不能接管本地账号
	_, err = s.OAuthLogin(ctx, fakeProvider{profile: &oauth.GoogleUser{Sub: "g-evil", Email: "dave@example.com"}}, "code")
	assertCode(t, err, errno.AuthorizationFailedCode)
	assert.Nil(t, users.byId[local.Id].GoogleId)
	_, err = s.OAuthLogin(ctx, fakeProvider{profile: &oauth.GoogleUser{Sub: "g-new", Email: "erin@example.com"}}, "code")
	assertCode(t, err, errno.AuthorizationFailedCode)
	assert.Len(t, users.byId, 2)

	linked, err := s.OAuthLogin(ctx, fakeProvider{profile: &oauth.GoogleUser{Sub: "g-2", Email: "dave@example.com", EmailVerified: true}}, "code")
	require.NoError(t, err)
	assert.Equal(t, local.Id, linked.Id)
	require.NotNil(t, users.byId[local.Id].GoogleId)
	assert.Equal(t, "g-2", *users.byId[local.Id].GoogleId)

	// OAuth 账号不能用密码登录
	_, err = s.Login(ctx, "carol@example.com", "anything")
	assertCode(t, err, errno.ParamErrCode)
}

func TestChannel(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	owner, err := NewAuthService(users).Register(ctx, &RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	counters := fakeCounters{subscribers: 3, subscribed: true, videos: map[bool]int64{false: 2, true: 5}}
	s := NewChannelService(users, counters, counters)

	anon, err := s.GetChannel(ctx, 0, owner.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), anon.Subscribers)
	assert.Equal(t, int64(2), anon.VideoCount)
	assert.False(t, anon.IsSubscribed)
	assert.False(t, anon.IsOwner)

	self, err := s.GetChannel(ctx, owner.Id, owner.Id)
	require.NoError(t, err)
	assert.True(t, self.IsOwner)
	assert.Equal(t, int64(5), self.VideoCount)

	viewer, err := s.GetChannel(ctx, owner.Id+1, owner.Id)
	require.NoError(t, err)
	assert.True(t, viewer.IsSubscribed)

	_, err = s.GetChannel(ctx, 0, owner.Id+100)
	assertCode(t, err, errno.NotFoundErrCode)

	desc := "cooking videos"
	updated, err := s.UpdateChannel(ctx, owner.Id, &UpdateChannelRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)

	empty := "  "
	_, err = s.UpdateChannel(ctx, owner.Id, &UpdateChannelRequest{Name: &empty})
	assertCode(t, err, errno.ParamErrCode)
}

// duplicateUsers 查重通过后插入时撞上唯一索引
type duplicateUsers struct {
	*fakeUsers
}

func (f duplicateUsers) CreateUser(ctx context.Context, user *model.User) error {
	return errors.Wrap(gorm.ErrDuplicatedKey, "CreateUser failed")
}

func TestRegisterDuplicateInsert(t *testing.T) {
	s := NewAuthService(duplicateUsers{newFakeUsers()})
	_, err := s.Register(context.Background(), &RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret1"})
	assertCode(t, err, errno.ConflictErrCode)
}
