package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"VidHub.com/cmd/api/router"
	webs "VidHub.com/cmd/api/router/websocket"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/config"
	"VidHub.com/config/pprof"
	"VidHub.com/pkg/cache"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/jwt"
	"VidHub.com/pkg/limiter"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/notifier"
	"VidHub.com/pkg/oss"
	"VidHub.com/pkg/search"
	"VidHub.com/pkg/tracer"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

const serviceName = "vidhub-api"

// Init 初始化各项依赖，可选组件连接失败时降级运行
func Init(ctx context.Context) []io.Closer {
	config.Init()
	conf := config.ConfigInfo
	var closers []io.Closer

	if conf.Jaeger.AgentAddr != "" {
		closer, err := tracer.InitJaeger(serviceName, conf.Jaeger.AgentAddr)
		if err != nil {
			hlog.Warnf("init jaeger failed: %v", err)
		} else {
			closers = append(closers, closer)
		}
	}
	if err := utils.InitSnowflake(1); err != nil {
		panic(err)
	}
	database.Init()
	cache.Init()
	if err := jwt.Init(conf.Jwt.Secret, conf.Jwt.Timeout); err != nil {
		panic(err)
	}
	if err := limiter.Init(map[string]float64{
		limiter.ResourceLogin:  conf.RateLimit.LoginQps,
		limiter.ResourceUpload: conf.RateLimit.UploadQps,
	}); err != nil {
		hlog.Warnf("init sentinel failed, rate limiting disabled: %v", err)
	}
	if err := oss.InitMinio(); err != nil {
		hlog.Warnf("init minio failed, uploads disabled: %v", err)
	}

	hub := notifier.NewHub()
	deps := svc.Deps{DB: database.DB, Redis: cache.Client, Hub: hub, Storage: oss.Default}

	if url := config.RabbitMqURL(); url != "" {
		producer, err := mq.NewProducer(url)
		if err != nil {
			hlog.Warnf("connect rabbitmq failed, pushing notifications locally: %v", err)
		} else {
			deps.Producer = producer
			closers = append(closers, producer)
			consumer, err := mq.NewConsumer(url)
			if err != nil {
				hlog.Errorf("create notification consumer failed: %v", err)
			} else {
				closers = append(closers, consumer)
				go func() {
					if err := consumer.ConsumeNotificationEvents(ctx, hub); err != nil {
						hlog.Errorf("consume notification events failed: %v", err)
					}
				}()
			}
		}
	}

	if conf.Elastic.Url != "" {
		indexer, err := search.NewElasticIndexer(ctx, conf.Elastic.Url, conf.Elastic.Index)
		if err != nil {
			hlog.Warnf("connect elasticsearch failed, searching the database instead: %v", err)
		} else {
			deps.Indexer = indexer
		}
	}

	svc.Init(deps)
	if svc.PurgeJob != nil {
		go svc.PurgeJob.Start(ctx)
	}
	return closers
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	closers := Init(ctx)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(config.ConfigInfo.Upload.MaxVideoSize)+(1<<20)),
	)

	// 配置 CORS，cookie 会话需要允许凭证
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": errno.ServiceErr.ErrMsg,
				"data":    nil,
			})
		})))
	r.Use(tracer.Middleware())

	// 注册路由
	router.GeneratedRegister(r)

	// 启动 WebSocket 服务
	ws := server.Default(
		server.WithHostPorts(config.ConfigInfo.Server.WsAddr),
	)
	ws.NoHijackConnPool = true
	webs.WebsocketRegister(ws)

	// 启动 WebSocket 和 HTTP 服务
	go ws.Spin()
	r.Spin()
}
