package errno

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	SuccessCode             = 0
	ServiceErrCode          = 10001
	ParamErrCode            = 10002
	AuthorizationFailedCode = 10003
	TokenInvalidErrCode     = 10004
	ForbiddenErrCode        = 10005
	NotFoundErrCode         = 10006
	ConflictErrCode         = 10007
	TooManyRequestsErrCode  = 10008
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Internal server error")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong parameter has been given")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedCode, "Authorization failed")
	TokenInvalidErr        = NewErrNo(TokenInvalidErrCode, "Token is invalid or expired")
	ForbiddenErr           = NewErrNo(ForbiddenErrCode, "Permission denied")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	ConflictErr            = NewErrNo(ConflictErrCode, "Resource already exists")
	TooManyRequestsErr     = NewErrNo(TooManyRequestsErrCode, "Too many requests")
)

// ConvertErr 将任意错误转换为 ErrNo，未知错误统一为 ServiceErr，避免把内部错误暴露给客户端
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr
}

// HTTPStatus 业务码对应的 HTTP 状态码
func HTTPStatus(code int64) int {
	switch code {
	case SuccessCode:
		return http.StatusOK
	case ParamErrCode:
		return http.StatusBadRequest
	case AuthorizationFailedCode, TokenInvalidErrCode:
		return http.StatusUnauthorized
	case ForbiddenErrCode:
		return http.StatusForbidden
	case NotFoundErrCode:
		return http.StatusNotFound
	case ConflictErrCode:
		return http.StatusConflict
	case TooManyRequestsErrCode:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
