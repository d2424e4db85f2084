// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetInt parses an integer variable, returning fallback if it is unset or empty.
func GetInt(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(GetEnv(key, ""))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetFloat parses a floating-point variable, returning fallback if it is unset or empty.
func GetFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(GetEnv(key, ""))
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// GetBool parses a boolean variable. Besides strconv's forms it accepts
// "on"/"off" and "yes"/"no".
func GetBool(key string, fallback bool) (bool, error) {
	value := strings.ToLower(strings.TrimSpace(GetEnv(key, "")))
	switch value {
	case "":
		return fallback, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
