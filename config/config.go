package config

import (
	"os"

	"fwsim/constant"
)

func IsDebug() bool {
	return os.Getenv("ENV") == "debug"
}

func IsTest() bool {
	return os.Getenv("ENV") == "test"
}

// RulesPath returns the rules file path, RULES_PATH takes precedence over the default.
func RulesPath() string {
	if path := os.Getenv("RULES_PATH"); path != "" {
		return path
	}
	return constant.RulesPath
}
