package db

import (
	"context"

	"VidHub.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "Create user failed, email: %s", user.Email)
	}
	return nil
}

func (s *UserStore) GetUserById(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "GetUserById failed, id: %d", id)
	}
	return &user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "GetUserByEmail failed, email: %s", email)
	}
	return &user, nil
}

func (s *UserStore) GetUserByGoogleId(ctx context.Context, googleId string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("google_id = ?", googleId).First(&user).Error; err != nil {
		return nil, errors.Wrapf(err, "GetUserByGoogleId failed")
	}
	return &user, nil
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "Query user failed!")
	}
	return count > 0, nil
}

// UpdateUser fields 为列名到值的映射，空映射直接返回
func (s *UserStore) UpdateUser(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return errors.Wrapf(err, "Update user failed, id: %d", id)
	}
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash).Error; err != nil {
		return errors.Wrapf(err, "Update user password failed, id: %d", id)
	}
	return nil
}

func (s *UserStore) LinkGoogle(ctx context.Context, id int64, googleId string) error {
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("google_id", googleId).Error; err != nil {
		return errors.Wrapf(err, "Link google account failed, id: %d", id)
	}
	return nil
}

func (s *UserStore) GetPublicUsers(ctx context.Context, ids []int64) ([]*model.UserPublic, error) {
	users := make([]*model.UserPublic, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "GetPublicUsers failed")
	}
	return users, nil
}
