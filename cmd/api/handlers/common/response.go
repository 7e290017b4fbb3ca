package common

import (
	"errors"

	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response，HTTP 状态码由业务码决定
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	var e errno.ErrNo
	if err != nil && !errors.As(err, &e) {
		hlog.Errorf("%s %s: %+v", c.Method(), c.Path(), err)
	}
	c.JSON(errno.HTTPStatus(Err.ErrCode), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// Fail 写入错误响应并终止后续中间件
func Fail(c *app.RequestContext, err error) {
	SendResponse(c, err, nil)
	c.Abort()
}

// BindError 参数绑定或校验失败
func BindError(err error) error {
	return errno.ParamErr.WithMessage(err.Error())
}

func Bind(c *app.RequestContext, req interface{}) error {
	if err := c.BindAndValidate(req); err != nil {
		return BindError(err)
	}
	return nil
}

// PathID 解析路径参数中的 id
func PathID(c *app.RequestContext, name string) (int64, error) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		return 0, errno.ParamErr.WithMessage("invalid " + name)
	}
	return id, nil
}

// PageParam 通用分页参数
type PageParam struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func (p PageParam) LimitOffset() (int, int) {
	return utils.Page(p.Page, p.Limit)
}

// CurrentUser 当前登录用户，匿名请求为 0
func CurrentUser(c *app.RequestContext) int64 {
	uid, _ := jwt.GetUserID(c)
	return uid
}

// ListData 列表类接口的统一数据结构
type ListData struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

// Handle 处理只关心返回值和错误的接口
func Handle(c *app.RequestContext, fn func() (interface{}, error)) {
	data, err := fn()
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, errno.Success, data)
}
