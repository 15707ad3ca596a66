package dotEnvLoader

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader reads key/value pairs from a .env file and overlays the
// process environment on top, so exported variables win over file entries.
type DotEnvLoader struct {
	Path string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	const op = "dotEnvLoader.Load"

	path := l.Path
	if path == "" {
		path = ".env"
	}

	envs, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		envs = make(map[string]string)
	}

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		envs[name] = value
	}

	return envs, nil
}
