package jwt

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"VidHub.com/pkg/constants"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"
)

const currentUserKey = "current_user_id"

var JwtMiddleware *jwt.HertzJWTMiddleware

// Init 初始化 JWT 中间件，用户 id 以字符串形式写入 claims，避免 int64 在 json 中丢精度
func Init(secret string, timeout time.Duration) error {
	var err error
	JwtMiddleware, err = jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidhub",
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    timeout,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if v, ok := data.(string); ok {
				return jwt.MapClaims{constants.IdentityKey: v}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return claims[constants.IdentityKey]
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":    errno.TokenInvalidErr.ErrCode,
				"message": errno.TokenInvalidErr.ErrMsg,
				"data":    nil,
			})
		},
	})
	return err
}

// GenerateToken 签发 access token
func GenerateToken(uid int64) (string, time.Time, error) {
	return JwtMiddleware.TokenGenerator(strconv.FormatInt(uid, 10))
}

// ParseUserID 从请求中解析 token，失败或过期返回 false
func ParseUserID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	if JwtMiddleware == nil {
		return 0, false
	}
	claims, err := JwtMiddleware.GetClaimsFromJWT(ctx, c)
	if err != nil {
		return 0, false
	}
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < JwtMiddleware.TimeFunc().Unix() {
		return 0, false
	}
	uid := utils.Transfer(claims[constants.IdentityKey])
	if uid <= 0 {
		return 0, false
	}
	return uid, true
}

// SetUserID 认证中间件写入当前用户
func SetUserID(c *app.RequestContext, uid int64) {
	c.Set(currentUserKey, uid)
}

// GetUserID 读取当前用户，匿名请求返回 false
func GetUserID(c *app.RequestContext) (int64, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int64)
	return uid, ok && uid > 0
}
