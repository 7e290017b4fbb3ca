package config

import "time"

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Elastic   elastic   `yaml:"elastic" mapstructure:"elastic"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	Session   session   `yaml:"session" mapstructure:"session"`
	Google    google    `yaml:"google" mapstructure:"google"`
	Upload    upload    `yaml:"upload" mapstructure:"upload"`
	History   history   `yaml:"history" mapstructure:"history"`
	RateLimit rateLimit `yaml:"ratelimit" mapstructure:"ratelimit"`
}

type server struct {
	Addr        string   `yaml:"addr"`
	WsAddr      string   `yaml:"ws_addr" mapstructure:"ws_addr"`
	CorsOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	FrontendUrl string   `yaml:"frontend_url" mapstructure:"frontend_url"`
	PprofAddr   string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	PublicUrl string `yaml:"public_url" mapstructure:"public_url"`
}

type elastic struct {
	Url   string `yaml:"url"`
	Index string `yaml:"index"`
}

type jaeger struct {
	AgentAddr string `yaml:"agent_addr" mapstructure:"agent_addr"`
}

type jwt struct {
	Secret  string        `yaml:"secret"`
	Timeout time.Duration `yaml:"timeout"`
}

type session struct {
	CookieName string        `yaml:"cookie_name" mapstructure:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     bool          `yaml:"secure"`
}

type google struct {
	ClientId     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	RedirectUrl  string `yaml:"redirect_url" mapstructure:"redirect_url"`
}

type upload struct {
	MaxImageSize int64  `yaml:"max_image_size" mapstructure:"max_image_size"`
	MaxAudioSize int64  `yaml:"max_audio_size" mapstructure:"max_audio_size"`
	MaxVideoSize int64  `yaml:"max_video_size" mapstructure:"max_video_size"`
	TempDir      string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

type history struct {
	Retention     time.Duration `yaml:"retention"`
	PurgeInterval time.Duration `yaml:"purge_interval" mapstructure:"purge_interval"`
}

type rateLimit struct {
	UploadQps float64 `yaml:"upload_qps" mapstructure:"upload_qps"`
	LoginQps  float64 `yaml:"login_qps" mapstructure:"login_qps"`
}
