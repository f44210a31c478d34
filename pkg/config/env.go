// Package config provides helpers for reading typed settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	dir := GetEnvString("PUBLIC_DIR", "public")
func GetEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt parses an integer environment variable.
// An unset or empty variable yields defaultValue; an unparsable one is an error
// naming the key, so that startup fails instead of silently using the default.
//
// Example:
//
//	port, err := GetEnvInt("PORT", 3000)
func GetEnvInt(key string, defaultValue int) (int, error) {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

// GetEnvInt64 is GetEnvInt for 64-bit values such as byte sizes.
func GetEnvInt64(key string, defaultValue int64) (int64, error) {
	return parseEnv(key, defaultValue, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// GetEnvFloat parses a floating point environment variable.
func GetEnvFloat(key string, defaultValue float64) (float64, error) {
	return parseEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool parses a boolean environment variable.
//
// Accepted values are those of strconv.ParseBool: 1, t, T, TRUE, true, True, 0, f, F, FALSE, false, False.
func GetEnvBool(key string, defaultValue bool) (bool, error) {
	return parseEnv(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration parses a duration environment variable ("30s", "1m", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	return parseEnv(key, defaultValue, time.ParseDuration)
}

func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error)) (T, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := parse(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	return v, nil
}
