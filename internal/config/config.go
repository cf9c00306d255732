package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database   *dbConfig
	Service    *svcConfig
	Inference  *inferenceConfig
	ImageStore *imageStoreConfig
	Places     *placesConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite" validate:"oneof=sqlite pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"flytip_metrics.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address  string `envconfig:"IMPACT_PLANNER_ADDRESS" default:":8080" validate:"required"`
	BaseUrl  string `envconfig:"IMPACT_PLANNER_BASE_URL" default:"http://localhost:8080" validate:"url"`
	LogLevel string `envconfig:"IMPACT_PLANNER_LOG_LEVEL" default:"info"`

	// StageTimeout bounds every external pipeline call so a hung third
	// party cannot wedge a task in processing.
	StageTimeout               time.Duration `envconfig:"IMPACT_PLANNER_STAGE_TIMEOUT" default:"30s" validate:"gt=0"`
	CoefficientRefreshInterval time.Duration `envconfig:"IMPACT_PLANNER_COEFFICIENT_REFRESH_INTERVAL" default:"1h" validate:"gt=0"`
	// CoefficientWorkbook optionally points at an xlsx of county metrics
	// that replaces the built-in seed dataset.
	CoefficientWorkbook string `envconfig:"IMPACT_PLANNER_COEFFICIENT_WORKBOOK" default:""`

	CorsAllowedOrigins []string `envconfig:"IMPACT_PLANNER_CORS_ALLOWED_ORIGINS" default:"*"`
}

type inferenceConfig struct {
	BaseUrl        string `envconfig:"IMPACT_PLANNER_INFERENCE_URL" default:"http://localhost:9090" validate:"url"`
	ApiKey         string `envconfig:"IMPACT_PLANNER_INFERENCE_API_KEY" default:""`
	VisionModel    string `envconfig:"IMPACT_PLANNER_INFERENCE_VISION_MODEL" default:"vision-flash"`
	NarrativeModel string `envconfig:"IMPACT_PLANNER_INFERENCE_NARRATIVE_MODEL" default:"narrative-flash"`
}

type imageStoreConfig struct {
	Endpoint  string `envconfig:"IMPACT_PLANNER_IMAGE_STORE_ENDPOINT" default:"localhost:9000"`
	Bucket    string `envconfig:"IMPACT_PLANNER_IMAGE_STORE_BUCKET" default:"flytipping-images"`
	AccessKey string `envconfig:"IMPACT_PLANNER_IMAGE_STORE_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"IMPACT_PLANNER_IMAGE_STORE_SECRET_KEY" default:""`
	UseSSL    bool   `envconfig:"IMPACT_PLANNER_IMAGE_STORE_USE_SSL" default:"false"`
	// PublicBaseUrl overrides the URL prefix of uploaded images when the
	// bucket is served from behind a CDN. Empty means the endpoint itself.
	PublicBaseUrl string `envconfig:"IMPACT_PLANNER_IMAGE_STORE_PUBLIC_BASE_URL" default:""`
}

type placesConfig struct {
	BaseUrl string `envconfig:"IMPACT_PLANNER_PLACES_URL" default:"https://maps.googleapis.com" validate:"url"`
	// ApiKey enables the nearby-places enrichment of summaries. Empty
	// disables the lookup entirely.
	ApiKey string `envconfig:"IMPACT_PLANNER_PLACES_API_KEY" default:""`
}

// New populates the configuration from the environment and validates it.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
