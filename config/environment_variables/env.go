package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

type EnvironmentVariable struct {
	CONTENT_STORE_URL     string
	CONTENT_STORE_DATASET string
	CONTENT_STORE_TOKEN   string
	COMMERCE_STORE_URL    string
	COMMERCE_STORE_TOKEN  string
	CACHE_TYPE            string
	CACHE_URL             string
	CACHE_PASSWORD        string
	CACHE_DB              string
	REDIS_URL             string
	REDIS_PASSWORD        string
	REDIS_DB              string
	WEBHOOK_SECRET        string
	APP_ENV               string
	ALLOWED_CORS_HOSTS    []string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s", envKey)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Slice:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// IsDevelopment reports whether the process runs with development settings.
// Development shortens cache TTLs so editors see content changes quickly.
func (ev *EnvironmentVariable) IsDevelopment() bool {
	return ev.APP_ENV == "" || ev.APP_ENV == "development"
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
