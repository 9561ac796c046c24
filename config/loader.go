package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem is what the loader needs from the disk; tests swap it out.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem reads the actual disk.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables already set.
func (RealFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

// LoaderConfig holds the loader's dependencies and overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	// EnvAliases maps an environment variable to a config key, e.g.
	// GOOGLE_API_KEY -> gemini.api_key.
	EnvAliases map[string]string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path; it must exist.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvAlias binds an environment variable to an explicit config key.
func WithEnvAlias(envVar, key string) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.EnvAliases == nil {
			lc.EnvAliases = make(map[string]string)
		}
		lc.EnvAliases[envVar] = key
	}
}

// ResolvedFiles are the files a load will read. Empty means none found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds config.yml and .env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles returns the explicit paths from lc, searching for whichever
// is unset. The first match in searchDirs wins.
func (r *Resolver) ResolveFiles(serviceName string, lc LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.find(serviceName, "config.yml")
	}
	if files.EnvFile == "" {
		files.EnvFile = r.find(serviceName, ".env."+serviceName, ".env")
	}
	return files
}

func (r *Resolver) find(serviceName string, names ...string) string {
	for _, name := range names {
		for _, dir := range searchDirs(serviceName) {
			if p := dir + "/" + name; r.FileSystem.Exists(p) {
				return p
			}
		}
	}
	return ""
}

// searchDirs lists where config files live, for a binary started from the
// repository root or from one or two levels below it.
func searchDirs(serviceName string) []string {
	var dirs []string
	for _, rel := range []string{"cmd/" + serviceName, "config/" + serviceName, "config", ""} {
		for _, up := range []string{".", "..", "../.."} {
			if rel == "" {
				dirs = append(dirs, up)
			} else {
				dirs = append(dirs, up+"/"+rel)
			}
		}
	}
	return dirs
}

// LoadConfig fills cfg from, in increasing precedence: the YAML file, the
// .env file, environment variables named after config keys
// (SERVER_PORT -> server.port), and WithEnvAlias bindings.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)

	v := viper.New()
	switch {
	case files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile):
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
	case lc.ConfigFile != "":
		return fmt.Errorf("config file %s not found", lc.ConfigFile)
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env file %s: %v\n", filepath.Clean(files.EnvFile), err)
		}
	}

	for _, key := range configKeys(reflect.TypeOf(cfg), "") {
		if val, ok := os.LookupEnv(EnvName(key)); ok {
			v.Set(key, val)
		}
	}
	for envVar, key := range lc.EnvAliases {
		if val, ok := os.LookupEnv(envVar); ok {
			v.Set(key, val)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// EnvName is the environment variable that overrides key: gemini.api_key
// becomes GEMINI_API_KEY.
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// configKeys lists the dotted keys of t's leaf fields, following
// mapstructure tags. Squashed embeds share their parent's prefix.
func configKeys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if strings.Contains(opts, "squash") {
			keys = append(keys, configKeys(ft, prefix)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		if ft.Kind() == reflect.Struct {
			keys = append(keys, configKeys(ft, prefix+name+".")...)
			continue
		}
		keys = append(keys, prefix+name)
	}
	return keys
}
