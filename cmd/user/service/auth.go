package service

import (
	"context"
	"strings"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const minPasswordLength = 6

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, errno.ParamErr.WithMessage("name and a valid email are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, errno.ParamErr.WithMessage("password must be at least 6 characters")
	}
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.EmailExists failed")
	}
	if exists {
		return nil, errno.ConflictErr.WithMessage("email already registered")
	}
	hash, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     constants.RoleUser,
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		if database.IsDuplicate(err) {
			return nil, errno.ConflictErr.WithMessage("email already registered")
		}
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(ctx, "user registered: id=%d email=%s", user.Id, email)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errno.ParamErr.WithMessage("email and password are required")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errno.AuthorizationFailedErr.WithMessage("invalid email or password")
		}
		return nil, errors.WithMessage(err, "dao.GetUserByEmail failed")
	}
	if !user.HasPassword() {
		return nil, errno.ParamErr.WithMessage("this account signs in with Google")
	}
	if ok, _ := utils.VerifyPassword(password, user.Password); !ok {
		return nil, errno.AuthorizationFailedErr.WithMessage("invalid email or password")
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserById(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, errno.NotFoundErr.WithMessage("user not found")
		}
		return nil, errors.WithMessage(err, "dao.GetUserById failed")
	}
	return user, nil
}

// ChangePassword 没有本地密码的账号可以直接设置新密码
func (s *AuthService) ChangePassword(ctx context.Context, uid int64, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return errno.ParamErr.WithMessage("password must be at least 6 characters")
	}
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}
	if user.HasPassword() {
		if ok, _ := utils.VerifyPassword(oldPassword, user.Password); !ok {
			return errno.AuthorizationFailedErr.WithMessage("old password is incorrect")
		}
	}
	hash, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.WithMessage(err, "Password fail to crypt")
	}
	return s.users.UpdatePassword(ctx, uid, hash)
}
