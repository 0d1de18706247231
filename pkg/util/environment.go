package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable returns the named variable, or fallback when it is unset or empty
func GetEnvironmentVariable(name string, fallback string) string {
	env := GetEnvironmentVariables()

	if env[name] != "" {
		return env[name]
	}

	return fallback
}
