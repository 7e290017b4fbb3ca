package limiter

import (
	"context"

	"VidHub.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	ResourceUpload = "upload"
	ResourceLogin  = "login"
)

// Init 初始化 sentinel 并按 QPS 加载限流规则，qps<=0 表示不限流
func Init(rules map[string]float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	flowRules := make([]*flow.Rule, 0, len(rules))
	for resource, qps := range rules {
		if qps <= 0 {
			continue
		}
		flowRules = append(flowRules, &flow.Rule{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		})
	}
	if _, err := flow.LoadRules(flowRules); err != nil {
		return err
	}
	hlog.Infof("sentinel loaded %d flow rules", len(flowRules))
	return nil
}

// Middleware 超过阈值直接返回 429
func Middleware(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		e, b := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if b != nil {
			c.AbortWithStatusJSON(errno.HTTPStatus(errno.TooManyRequestsErrCode), map[string]interface{}{
				"code":    errno.TooManyRequestsErr.ErrCode,
				"message": errno.TooManyRequestsErr.ErrMsg,
				"data":    nil,
			})
			return
		}
		defer e.Exit()
		c.Next(ctx)
	}
}
