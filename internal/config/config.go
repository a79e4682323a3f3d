package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"5000"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`

	DBType      string `env:"DBType" envDefault:"sqlite"`
	DSNURL      string `env:"DSN_URL" envDefault:""`
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`
	DBUser      string `env:"DBUser" envDefault:""`
	DBPassword  string `env:"DBPassword" envDefault:""`
	DBAddr      string `env:"DBAddr" envDefault:""`
	DBName      string `env:"DBName" envDefault:"election"`
	DBPath      string `env:"DBPath" envDefault:"datas/campaign.db"`
	DBPort      string `env:"DBPort"`

	StorageType          string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir      string `env:"STORAGE_LOCAL_DIR" envDefault:"public/uploads"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"/uploads"`

	// S3 兼容存储配置
	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// 阿里云 OSS 存储配置
	StorageOSSEndpoint        string `env:"STORAGE_OSS_ENDPOINT"`
	StorageOSSBucket          string `env:"STORAGE_OSS_BUCKET"`
	StorageOSSPrefix          string `env:"STORAGE_OSS_PREFIX"`
	StorageOSSAccessKeyID     string `env:"STORAGE_OSS_ACCESS_KEY_ID"`
	StorageOSSAccessKeySecret string `env:"STORAGE_OSS_ACCESS_KEY_SECRET"`

	// 腾讯云 COS 存储配置
	StorageCOSBucketURL string `env:"STORAGE_COS_BUCKET_URL"`
	StorageCOSPrefix    string `env:"STORAGE_COS_PREFIX"`
	StorageCOSSecretID  string `env:"STORAGE_COS_SECRET_ID"`
	StorageCOSSecretKey string `env:"STORAGE_COS_SECRET_KEY"`

	// Cloudflare R2 存储配置
	StorageR2AccountID       string `env:"STORAGE_R2_ACCOUNT_ID"`
	StorageR2Endpoint        string `env:"STORAGE_R2_ENDPOINT"`
	StorageR2Region          string `env:"STORAGE_R2_REGION" envDefault:"auto"`
	StorageR2Bucket          string `env:"STORAGE_R2_BUCKET"`
	StorageR2Prefix          string `env:"STORAGE_R2_PREFIX"`
	StorageR2AccessKeyID     string `env:"STORAGE_R2_ACCESS_KEY_ID"`
	StorageR2SecretAccessKey string `env:"STORAGE_R2_SECRET_ACCESS_KEY"`

	// MinIO 存储配置
	StorageMinIOEndpoint  string `env:"STORAGE_MINIO_ENDPOINT"`
	StorageMinIOBucket    string `env:"STORAGE_MINIO_BUCKET" envDefault:"campaign"`
	StorageMinIOPrefix    string `env:"STORAGE_MINIO_PREFIX"`
	StorageMinIOAccessKey string `env:"STORAGE_MINIO_ACCESS_KEY"`
	StorageMinIOSecretKey string `env:"STORAGE_MINIO_SECRET_KEY"`
	StorageMinIOUseSSL    bool   `env:"STORAGE_MINIO_USE_SSL" envDefault:"false"`

	// 候选人照片
	PhotoMaxBytes       int64  `env:"PHOTO_MAX_BYTES" envDefault:"5242880"`
	PhotoPlaceholderURL string `env:"PHOTO_PLACEHOLDER_URL" envDefault:"/uploads/default-candidate.jpg"`
	PhotoResize         bool   `env:"PHOTO_RESIZE" envDefault:"false"`
	PhotoWidth          int    `env:"PHOTO_WIDTH" envDefault:"800"`
	PhotoHeight         int    `env:"PHOTO_HEIGHT" envDefault:"1000"`

	// 候选人邮箱是否必填，默认与数据库结构保持一致（可选）
	CandidateEmailRequired bool `env:"CANDIDATE_EMAIL_REQUIRED" envDefault:"false"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"campaign-site"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`

	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminEmail        string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	SeedSampleContent bool   `env:"SEED_SAMPLE_CONTENT" envDefault:"false"`

	RedisURL        string `env:"REDIS_URL"`
	CachePrefix     string `env:"CACHE_PREFIX" envDefault:"campaign:"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`

	LoginRatePerSecond float64 `env:"LOGIN_RATE_PER_SECOND" envDefault:"0.5"`
	LoginRateBurst     int     `env:"LOGIN_RATE_BURST" envDefault:"10"`
}

// ParseConfig 读取 .env（若存在）并解析环境变量
func ParseConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("failed to load .env file")
	}

	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	if Conf.DSNURL == "" && Conf.DatabaseURL != "" {
		Conf.DSNURL = Conf.DatabaseURL
	}
	return Conf, nil
}
