package config

import "os"

func IsDebug() bool {
	return os.Getenv("MEDAGENT_DEBUG") == "1"
}
