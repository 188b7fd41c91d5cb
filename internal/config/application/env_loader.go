package application

import (
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"sysmon/internal/shared/logger"
)

// EnvPrefix marks the environment variables sysmon reads its settings from
const EnvPrefix = "SYSMON_"

// LoadEnvFile applies the variables of a dotenv file that are not already set,
// so the real environment keeps precedence. An empty envFile means ".env".
// It returns the applied keys in sorted order and whether the file was read.
func LoadEnvFile(log logger.Logger, envFile string) ([]string, bool) {
	if envFile == "" {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		log.Debug("No .env file found", "path", envFile)
		return nil, false
	}

	values, err := godotenv.Read(envFile)
	if err != nil {
		log.Warn("Failed to load .env file", "path", envFile, "err", err)
		return nil, false
	}

	var applied, shadowed, foreign []string
	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			shadowed = append(shadowed, key)
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			log.Warn("Failed to apply .env variable", "path", envFile, "key", key, "err", err)
			continue
		}
		applied = append(applied, key)
		if !strings.HasPrefix(key, EnvPrefix) {
			foreign = append(foreign, key)
		}
	}
	sort.Strings(applied)
	sort.Strings(shadowed)
	sort.Strings(foreign)

	log.Debug("Loaded .env file",
		"path", envFile,
		"settings", sysmonKeys(applied),
		"shadowed_by_env", shadowed,
		"other", foreign,
	)
	return applied, true
}

func sysmonKeys(keys []string) []string {
	var out []string
	for _, k := range keys {
		if strings.HasPrefix(k, EnvPrefix) {
			out = append(out, k)
		}
	}
	return out
}
