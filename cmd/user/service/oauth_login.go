package service

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/oauth"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// OAuthLogin 按 google id 查找，其次按邮箱关联已有账号，都没有则创建
// 未验证的邮箱既不关联也不建号
func (s *AuthService) OAuthLogin(ctx context.Context, provider oauth.Provider, code string) (*model.User, error) {
	if code == "" {
		return nil, errno.ParamErr.WithMessage("missing code")
	}
	profile, err := provider.Exchange(ctx, code)
	if err != nil {
		hlog.CtxErrorf(ctx, "oauth exchange failed: %v", err)
		return nil, errno.AuthorizationFailedErr.WithMessage("oauth exchange failed")
	}
	if profile.Sub == "" || profile.Email == "" {
		return nil, errno.AuthorizationFailedErr.WithMessage("oauth profile incomplete")
	}

	user, err := s.users.GetUserByGoogleId(ctx, profile.Sub)
	if err == nil {
		return user, nil
	}
	if !database.IsNotFound(err) {
		return nil, errors.WithMessage(err, "dao.GetUserByGoogleId failed")
	}

	if !profile.EmailVerified {
		return nil, errno.AuthorizationFailedErr.WithMessage("google email not verified")
	}
	email := strings.ToLower(profile.Email)
	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err = s.users.LinkGoogle(ctx, user.Id, profile.Sub); err != nil {
			return nil, errors.WithMessage(err, "dao.LinkGoogle failed")
		}
		googleId := profile.Sub
		user.GoogleId = &googleId
		return user, nil
	case !database.IsNotFound(err):
		return nil, errors.WithMessage(err, "dao.GetUserByEmail failed")
	}

	googleId := profile.Sub
	name := profile.Name
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	user = &model.User{
		Name:     name,
		Email:    email,
		Avatar:   profile.Picture,
		Role:     constants.RoleUser,
		GoogleId: &googleId,
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		if database.IsDuplicate(err) {
			return nil, errno.ConflictErr.WithMessage("account already exists")
		}
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(ctx, "user created from google login: id=%d", user.Id)
	return user, nil
}
