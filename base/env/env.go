package env

import (
	"os"

	"github.com/spf13/viper"
)

// PodName example: k8ssta-klvmarket-api-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta. `env_name` in config wins over ENV_NAME.
func EnvName() string {
	return firstNonEmpty(viper.GetString("env_name"), os.Getenv("ENV_NAME"))
}

// AppName example: api. `app_name` in config wins over APP_NAME.
func AppName() string {
	return firstNonEmpty(viper.GetString("app_name"), os.Getenv("APP_NAME"))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
