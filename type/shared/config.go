package shared

type Config struct {
	Environment *bool     `yaml:"environment" validate:"required"`
	Port        *string   `yaml:"port" validate:"required" envconfig:"PORT"`
	Cors        []*string `yaml:"cors" validate:"required"`
	JWTSecret   *string   `yaml:"jwt_secret" validate:"required" envconfig:"JWT_SECRET"`

	Postgres         *string   `yaml:"postgres" validate:"required" envconfig:"POSTGRES"`
	PostgresReplicas []*string `yaml:"postgres_replicas"`
	Mongo            *string   `yaml:"mongo" envconfig:"MONGO"`
	MongoDatabase    *string   `yaml:"mongo_database"`
	Redis            *string   `yaml:"redis" envconfig:"REDIS"`

	FileStore *FileStoreConfig `yaml:"file_store" validate:"required"`
	Renderer  *RendererConfig  `yaml:"renderer" validate:"required"`
	Mail      *MailConfig      `yaml:"mail"`
	Cache     *CacheConfig     `yaml:"cache"`
	Queue     *QueueConfig     `yaml:"queue"`
	Clamd     *ClamdConfig     `yaml:"clamd"`
}

type FileStoreConfig struct {
	Driver          *string `yaml:"driver" validate:"required,oneof=local minio" envconfig:"DRIVER"`
	CertificateRoot *string `yaml:"certificate_root"`
	IDCardRoot      *string `yaml:"idcard_root"`
	PublicBaseURL   *string `yaml:"public_base_url" validate:"required"`

	MinIoEndpoint     *string `yaml:"minio_endpoint" envconfig:"MINIO_ENDPOINT"`
	MinIoAccessKey    *string `yaml:"minio_access_key" envconfig:"MINIO_ACCESS_KEY"`
	MinIoSecretKey    *string `yaml:"minio_secret_key" envconfig:"MINIO_SECRET_KEY"`
	MinIoUseSSL       *bool   `yaml:"minio_use_ssl"`
	BucketCertificate *string `yaml:"bucket_certificate"`
	BucketIDCard      *string `yaml:"bucket_idcard"`
}

type RendererConfig struct {
	PreviewWidth        *float64 `yaml:"preview_width" validate:"required,gt=0"`
	PreviewHeight       *float64 `yaml:"preview_height" validate:"required,gt=0"`
	FuzzyFormFieldMatch *bool    `yaml:"fuzzy_form_field_match"`
	Timezone            *string  `yaml:"timezone"`
	SigningEnabled      *bool    `yaml:"signing_enabled"`
	SigningCertPath     *string  `yaml:"signing_cert_path"`
	SigningKeyPath      *string  `yaml:"signing_key_path"`
}

type MailConfig struct {
	DefaultCompanyName *string `yaml:"default_company_name"`
	Workers            *int    `yaml:"workers"`
}

type CacheConfig struct {
	EventsTTL         *string `yaml:"events_ttl"`
	AccommodationsTTL *string `yaml:"accommodations_ttl"`
}

type QueueConfig struct {
	Enabled     *bool `yaml:"enabled" envconfig:"ENABLED"`
	Concurrency *int  `yaml:"concurrency"`
}

type ClamdConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Address *string `yaml:"address" envconfig:"ADDRESS"`
}
