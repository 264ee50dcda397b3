package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	API_PORT                 int
	DB_DRIVER                string
	DATABASE_URL             string
	DATABASE_READ_URLS       []string
	SCHEMA_NAME              string
	QUERY_BLACKLIST          []string
	CACHE_TYPE               string
	CACHE_URL                string
	CACHE_PASSWORD           string
	CACHE_DB                 string
	CACHE_TTL_SECONDS        int
	UPSTASH_REDIS_REST_URL   string
	UPSTASH_REDIS_REST_TOKEN string
	ALLOWED_CORS_HOSTS       []string
	OPENAI_API_KEY           string
	OPENAI_BASE_URL          string
	OPENAI_MODEL             string
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
		case reflect.Int:
			if n, err := strconv.Atoi(envValue); err == nil {
				v.Field(i).SetInt(int64(n))
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(envValue); err == nil {
				v.Field(i).SetBool(b)
			}
		case reflect.Slice:
			parts := []string{}
			for _, part := range strings.Split(envValue, ",") {
				if part = strings.TrimSpace(part); part != "" {
					parts = append(parts, part)
				}
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
