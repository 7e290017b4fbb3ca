package errno

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	assert.Equal(t, Success, ConvertErr(nil))
	assert.Equal(t, NotFoundErr, ConvertErr(NotFoundErr))

	wrapped := errors.Wrap(ForbiddenErr, "delete video")
	assert.Equal(t, ForbiddenErr.ErrCode, ConvertErr(wrapped).ErrCode)

	stdWrapped := fmt.Errorf("outer: %w", ParamErr.WithMessage("title is required"))
	got := ConvertErr(stdWrapped)
	assert.Equal(t, int64(ParamErrCode), got.ErrCode)
	assert.Equal(t, "title is required", got.ErrMsg)

	// 未知错误不应泄露原始信息
	raw := ConvertErr(fmt.Errorf("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, ServiceErr, raw)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int64]int{
		SuccessCode:             http.StatusOK,
		ParamErrCode:            http.StatusBadRequest,
		AuthorizationFailedCode: http.StatusUnauthorized,
		TokenInvalidErrCode:     http.StatusUnauthorized,
		ForbiddenErrCode:        http.StatusForbidden,
		NotFoundErrCode:         http.StatusNotFound,
		ConflictErrCode:         http.StatusConflict,
		TooManyRequestsErrCode:  http.StatusTooManyRequests,
		ServiceErrCode:          http.StatusInternalServerError,
		99999:                   http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %d", code)
	}
}
