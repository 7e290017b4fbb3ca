package tracer

import (
	"context"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitJaeger 设置全局 tracer，gorm 的 opentracing 插件与 HTTP 中间件共用
func InitJaeger(service, agentAddr string) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	logrus.Infof("jaeger tracer reporting to %s", agentAddr)
	return closer, nil
}

// Middleware 为每个请求创建 span，下游 gorm 调用挂在同一个 context 上
func Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		span, ctx := opentracing.StartSpanFromContext(ctx, string(c.Method())+" "+c.FullPath())
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.URI().Path()))
		defer func() {
			r := recover()
			status := c.Response.StatusCode()
			if r != nil {
				status = consts.StatusInternalServerError
			}
			ext.HTTPStatusCode.Set(span, uint16(status))
			if status >= consts.StatusInternalServerError {
				ext.Error.Set(span, true)
			}
			span.Finish()
			// 交给外层 recovery 处理
			if r != nil {
				panic(r)
			}
		}()
		c.Next(ctx)
	}
}
