package devops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// AppConfig is the service configuration. Environment variables win; when
// APP_CONFIG_PARAM is set, a yaml document in SSM fills in the blanks.
type AppConfig struct {
	DSN           string `yaml:"dsn"`
	SigningSecret string `yaml:"signingSecret"` // base64
	PayslipBucket string `yaml:"payslipBucket"`
	ClientURL     string `yaml:"clientUrl"`
	Port          string `yaml:"port"`
}

var (
	once    sync.Once
	cfg     AppConfig
	loadErr error
)

func LoadAppConfig(ctx context.Context) (AppConfig, error) {
	once.Do(func() {
		if paramName := os.Getenv("APP_CONFIG_PARAM"); paramName != "" {
			awsCfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				loadErr = fmt.Errorf("load aws config: %w", err)
				return
			}

			client := ssm.NewFromConfig(awsCfg)

			out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
				Name:           aws.String(paramName),
				WithDecryption: aws.Bool(true),
			})
			if err != nil {
				loadErr = fmt.Errorf("get parameter: %w", err)
				return
			}

			if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &cfg); err != nil {
				loadErr = fmt.Errorf("unmarshal yaml: %w", err)
				return
			}
		}

		overrideFromEnv(&cfg.DSN, "DSN")
		overrideFromEnv(&cfg.SigningSecret, "STAFFDESK_SIGNING_SECRET")
		overrideFromEnv(&cfg.PayslipBucket, "PAYSLIP_BUCKET")
		overrideFromEnv(&cfg.ClientURL, "CLIENT_URL")
		overrideFromEnv(&cfg.Port, "PORT")

		if cfg.Port == "" {
			cfg.Port = "8090"
		}
	})

	return cfg, loadErr
}

func overrideFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
