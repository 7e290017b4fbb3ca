package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init 读取 .env 与 config.yml，环境变量 VIDHUB_XXX 可以覆盖配置文件中的同名项
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	v.SetEnvPrefix("VIDHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		v.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults and env: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	Load(v)

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Jwt.Secret == defaultJwtSecret {
		logrus.Warn("jwt.secret is the built-in default, set VIDHUB_JWT_SECRET in production")
	}
}

const defaultJwtSecret = "vidhub-dev-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8888")
	v.SetDefault("server.ws_addr", ":10000")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:8888"})
	v.SetDefault("server.frontend_url", "http://localhost:5173")

	v.SetDefault("mysql.addr", "127.0.0.1:3306")
	v.SetDefault("mysql.database", "vidhub")
	v.SetDefault("mysql.username", "root")
	v.SetDefault("mysql.charset", "utf8mb4")

	v.SetDefault("redis.addr", "127.0.0.1:6379")

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.bucket", "vidhub")

	v.SetDefault("elastic.index", "videos")

	v.SetDefault("jwt.secret", defaultJwtSecret)
	v.SetDefault("jwt.timeout", 12*time.Hour)

	v.SetDefault("session.cookie_name", "vidhub_sid")
	v.SetDefault("session.ttl", 7*24*time.Hour)

	v.SetDefault("upload.max_image_size", 10<<20)
	v.SetDefault("upload.max_audio_size", 50<<20)
	v.SetDefault("upload.max_video_size", 2<<30)
	v.SetDefault("upload.temp_dir", os.TempDir())

	v.SetDefault("history.retention", 30*24*time.Hour)
	v.SetDefault("history.purge_interval", time.Hour)

	v.SetDefault("ratelimit.upload_qps", 20)
	v.SetDefault("ratelimit.login_qps", 50)
}

// Load 手动从 viper 取值，避免 Unmarshal 时 duration 与嵌套结构的问题
func Load(v *viper.Viper) {
	ConfigInfo.Server.Addr = v.GetString("server.addr")
	ConfigInfo.Server.WsAddr = v.GetString("server.ws_addr")
	ConfigInfo.Server.CorsOrigins = v.GetStringSlice("server.cors_origins")
	ConfigInfo.Server.FrontendUrl = v.GetString("server.frontend_url")
	ConfigInfo.Server.PprofAddr = v.GetString("server.pprof_addr")

	ConfigInfo.Mysql.Addr = v.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = v.GetString("mysql.database")
	ConfigInfo.Mysql.Username = v.GetString("mysql.username")
	ConfigInfo.Mysql.Password = v.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = v.GetString("mysql.charset")

	ConfigInfo.Redis.Addr = v.GetString("redis.addr")
	ConfigInfo.Redis.Password = v.GetString("redis.password")
	ConfigInfo.Redis.DB = v.GetInt("redis.db")

	ConfigInfo.RabbitMq.Addr = v.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = v.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = v.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = v.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = v.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = v.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = v.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = v.GetString("minio.bucket")
	ConfigInfo.Minio.PublicUrl = v.GetString("minio.public_url")

	ConfigInfo.Elastic.Url = v.GetString("elastic.url")
	ConfigInfo.Elastic.Index = v.GetString("elastic.index")

	ConfigInfo.Jaeger.AgentAddr = v.GetString("jaeger.agent_addr")

	ConfigInfo.Jwt.Secret = v.GetString("jwt.secret")
	ConfigInfo.Jwt.Timeout = v.GetDuration("jwt.timeout")

	ConfigInfo.Session.CookieName = v.GetString("session.cookie_name")
	ConfigInfo.Session.TTL = v.GetDuration("session.ttl")
	ConfigInfo.Session.Secure = v.GetBool("session.secure")

	ConfigInfo.Google.ClientId = v.GetString("google.client_id")
	ConfigInfo.Google.ClientSecret = v.GetString("google.client_secret")
	ConfigInfo.Google.RedirectUrl = v.GetString("google.redirect_url")

	ConfigInfo.Upload.MaxImageSize = v.GetInt64("upload.max_image_size")
	ConfigInfo.Upload.MaxAudioSize = v.GetInt64("upload.max_audio_size")
	ConfigInfo.Upload.MaxVideoSize = v.GetInt64("upload.max_video_size")
	ConfigInfo.Upload.TempDir = v.GetString("upload.temp_dir")

	ConfigInfo.History.Retention = v.GetDuration("history.retention")
	ConfigInfo.History.PurgeInterval = v.GetDuration("history.purge_interval")

	ConfigInfo.RateLimit.UploadQps = v.GetFloat64("ratelimit.upload_qps")
	ConfigInfo.RateLimit.LoginQps = v.GetFloat64("ratelimit.login_qps")
}

// MysqlDSN 生成数据库的 dsn
func MysqlDSN() string {
	charset := ConfigInfo.Mysql.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return ConfigInfo.Mysql.Username + ":" + ConfigInfo.Mysql.Password +
		"@tcp(" + ConfigInfo.Mysql.Addr + ")/" + ConfigInfo.Mysql.Database +
		"?charset=" + charset + "&parseTime=True&loc=Local"
}

// RabbitMqURL 拼接 amqp 连接串，未配置地址时返回空串
func RabbitMqURL() string {
	if ConfigInfo.RabbitMq.Addr == "" {
		return ""
	}
	return "amqp://" + ConfigInfo.RabbitMq.Username + ":" + ConfigInfo.RabbitMq.Password + "@" + ConfigInfo.RabbitMq.Addr + "/"
}
