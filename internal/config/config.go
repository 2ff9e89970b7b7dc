// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "bucketctl"
	EnvPrefix      = "BUCKETCTL"
)

type AWSConfig struct {
	Region       string `mapstructure:"region" yaml:"region,omitempty"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	UsePathStyle bool   `mapstructure:"use_path_style" yaml:"use_path_style,omitempty"`
}

type GCPConfig struct {
	Project string `mapstructure:"project" yaml:"project,omitempty"`
}

type MinIOConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty" validate:"omitempty,hostname_port"`
	Region   string `mapstructure:"region" yaml:"region,omitempty"`
	UseSSL   bool   `mapstructure:"use_ssl" yaml:"use_ssl"`
}

type FilesConfig struct {
	UploadSource   string `mapstructure:"upload_source" yaml:"upload_source" validate:"required"`
	DownloadTarget string `mapstructure:"download_target" yaml:"download_target" validate:"required"`
}

type DiagnosticsConfig struct {
	File string `mapstructure:"file" yaml:"file" validate:"required"`
}

type NamingConfig struct {
	Match string `mapstructure:"match" yaml:"match" validate:"oneof=substring exact"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

type Config struct {
	Provider    string            `mapstructure:"provider" yaml:"provider" validate:"oneof=aws gcp minio"`
	AWS         *AWSConfig        `mapstructure:"aws" yaml:"aws,omitempty"`
	GCP         *GCPConfig        `mapstructure:"gcp" yaml:"gcp,omitempty"`
	MinIO       *MinIOConfig      `mapstructure:"minio" yaml:"minio,omitempty"`
	Files       FilesConfig       `mapstructure:"files" yaml:"files"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" yaml:"diagnostics"`
	Naming      NamingConfig      `mapstructure:"naming" yaml:"naming"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
}

// Every key the tool understands; SetValue rejects anything else
var knownKeys = []string{
	"provider",
	"aws.region",
	"aws.endpoint",
	"aws.use_path_style",
	"gcp.project",
	"minio.endpoint",
	"minio.region",
	"minio.use_ssl",
	"files.upload_source",
	"files.download_target",
	"diagnostics.file",
	"naming.match",
	"log.level",
}

// Returns the configuration used when no file or environment override is present
func DefaultConfig() *Config {
	return &Config{
		Provider: "aws",
		MinIO:    &MinIOConfig{UseSSL: true},
		Files: FilesConfig{
			UploadSource:   "error.log",
			DownloadTarget: "obj_download",
		},
		Diagnostics: DiagnosticsConfig{File: "error.log"},
		Naming:      NamingConfig{Match: "substring"},
		Log:         LogConfig{Level: "info"},
	}
}

// Returns the sorted list of supported configuration keys
func KnownKeys() []string {
	keys := make([]string, len(knownKeys))
	copy(keys, knownKeys)
	sort.Strings(keys)
	return keys
}

func IsKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ConfigManager owns two viper views of the config file: one with environment
// overrides applied for reading, and one holding only what the file contains so
// that writes never persist environment values.
type ConfigManager struct {
	v        *viper.Viper
	file     *viper.Viper
	path     string
	validate *validator.Validate
}

// Creates a manager for the default config path (~/.config/bucketctl/config.yaml)
func NewConfigManager() (*ConfigManager, error) {
	path, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerWithPath(path)
}

// Creates a manager for an explicit config file path
func NewConfigManagerWithPath(path string) (*ConfigManager, error) {
	file, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range knownKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment for %s: %w", key, err)
		}
	}
	if err := v.MergeConfigMap(file.AllSettings()); err != nil {
		return nil, fmt.Errorf("error merging config file %s: %w", path, err)
	}

	return &ConfigManager{
		v:        v,
		file:     file,
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func readConfigFile(path string) (*viper.Viper, error) {
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")

	if err := file.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return file, nil
}

func defaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", ConfigDirName, ConfigFileName), nil
}

func (cm *ConfigManager) Path() string {
	return cm.path
}

// Overlays the file and environment values on top of DefaultConfig and validates the result
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	return cm.decode(cm.v.AllSettings())
}

func (cm *ConfigManager) decode(settings map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating config decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cm.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (cm *ConfigManager) SetValue(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key: %s. Supported keys: %s", key, strings.Join(KnownKeys(), ", "))
	}

	settings := cm.file.AllSettings()
	setNested(settings, strings.Split(key, "."), value)

	// Reject values that would leave the file unloadable
	if _, err := cm.decode(settings); err != nil {
		return err
	}

	if err := cm.save(settings); err != nil {
		return err
	}
	return cm.reload()
}

func (cm *ConfigManager) GetValue(key string) (string, bool) {
	if !IsKnownKey(key) || !cm.v.IsSet(key) {
		return "", false
	}
	return cm.v.GetString(key), true
}

// Removes a key from the config file, reporting whether it was present
func (cm *ConfigManager) DeleteValue(key string) (bool, error) {
	if !IsKnownKey(key) {
		return false, fmt.Errorf("unknown config key: %s", key)
	}

	settings := cm.file.AllSettings()
	if !deleteNested(settings, strings.Split(key, ".")) {
		return false, nil
	}

	if err := cm.save(settings); err != nil {
		return false, err
	}
	if err := cm.reload(); err != nil {
		return false, err
	}
	return true, nil
}

// Returns the nested settings map, including environment overrides
func (cm *ConfigManager) GetAllSettings() map[string]interface{} {
	return cm.v.AllSettings()
}

func (cm *ConfigManager) save(settings map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(cm.path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	out := viper.New()
	out.SetConfigType("yaml")
	if err := out.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := out.WriteConfigAs(cm.path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (cm *ConfigManager) reload() error {
	fresh, err := NewConfigManagerWithPath(cm.path)
	if err != nil {
		return err
	}
	*cm = *fresh
	return nil
}

func setNested(m map[string]interface{}, path []string, value interface{}) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

func deleteNested(m map[string]interface{}, path []string) bool {
	if len(path) == 1 {
		if _, ok := m[path[0]]; !ok {
			return false
		}
		delete(m, path[0])
		return true
	}

	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		return false
	}
	if !deleteNested(child, path[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(m, path[0])
	}
	return true
}
