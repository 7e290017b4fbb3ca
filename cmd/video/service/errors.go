package service

import (
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"github.com/pkg/errors"
)

// notFoundOr 记录不存在时返回 404，其余错误附带上下文
func notFoundOr(err error, what string) error {
	if database.IsNotFound(err) {
		return errno.NotFoundErr.WithMessage(what + " not found")
	}
	return errors.WithMessagef(err, "load %s failed", what)
}
