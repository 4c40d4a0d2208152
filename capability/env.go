package capability

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment resolves configuration values for capability operations.
type Environment interface {
	Lookup(key string) (string, bool)
}

// MapEnv is an Environment backed by a map.
type MapEnv map[string]string

// Lookup returns the value stored under key.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OSEnv is an Environment backed by the process environment.
type OSEnv struct{}

// Lookup returns the process environment value for key.
func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Layered returns an Environment that consults envs in order.
// The first environment holding a non-empty value wins.
func Layered(envs ...Environment) Environment {
	return layered(envs)
}

type layered []Environment

func (l layered) Lookup(key string) (string, bool) {
	var found bool
	for _, env := range l {
		if env == nil {
			continue
		}
		v, ok := env.Lookup(key)
		if ok && v != "" {
			return v, true
		}
		found = found || ok
	}
	return "", found
}

// LoadDotEnv reads .env style files into a MapEnv without touching the
// process environment. Later files override earlier ones. With no paths it
// reads ".env" in the working directory.
func LoadDotEnv(paths ...string) (MapEnv, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	env := MapEnv{}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			env[k] = v
		}
	}
	return env, nil
}
