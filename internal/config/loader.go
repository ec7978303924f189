// Package config loads eventdesk runtime settings from a yaml, json or toml
// file and EVENTDESK_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EVENTDESK_"

// Config holds runtime parameters. Zero values mean "unspecified" and are
// replaced by Defaults.
type Config struct {
	DataDir            string  `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	Storage            Storage `json:"storage" yaml:"storage" toml:"storage"`
	Log                Log     `json:"log" yaml:"log" toml:"log"`
	StrictSave         bool    `json:"strict_save" yaml:"strict_save" toml:"strict_save"`
	ClientDeletePolicy string  `json:"client_delete_policy" yaml:"client_delete_policy" toml:"client_delete_policy"`
	MetricsFile        string  `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`
}

// Storage selects the snapshot backend.
type Storage struct {
	Driver      string `json:"driver" yaml:"driver" toml:"driver"`
	SQLitePath  string `json:"sqlite_path" yaml:"sqlite_path" toml:"sqlite_path"`
	PostgresDSN string `json:"postgres_dsn" yaml:"postgres_dsn" toml:"postgres_dsn"`
	Blob        Blob   `json:"blob" yaml:"blob" toml:"blob"`
}

// Blob configures the object store used by the blob storage driver.
type Blob struct {
	Driver string `json:"driver" yaml:"driver" toml:"driver"`
	FSRoot string `json:"fs_root" yaml:"fs_root" toml:"fs_root"`
	Prefix string `json:"prefix" yaml:"prefix" toml:"prefix"`
	S3     S3     `json:"s3" yaml:"s3" toml:"s3"`
}

// S3 holds the S3-compatible endpoint settings. Credentials come from the
// environment or the shared AWS config chain unless set here.
type S3 struct {
	Bucket          string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Region          string `json:"region" yaml:"region" toml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	PathStyle       bool   `json:"path_style" yaml:"path_style" toml:"path_style"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key" toml:"secret_access_key"`
}

// Log configures the process logger.
type Log struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		DataDir:            "./data",
		Storage:            Storage{Driver: "file"},
		Log:                Log{Level: "info", Format: "console"},
		ClientDeletePolicy: "allow",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Override adjusts a configuration after the file and environment layers,
// typically from command-line flags.
type Override func(*Config) error

// Resolve layers defaults, the optional file at path, environment overrides
// and then overrides, and validates the result.
func Resolve(path string, environ []string, overrides ...Override) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fromFile, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Merge(fromFile)
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return Config{}, err
	}
	for _, apply := range overrides {
		if err := apply(&cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge overwrites cfg with every non-zero field of other. Booleans can only
// be switched on by a file; use the environment or flags to switch them off.
func (c *Config) Merge(other Config) {
	setString(&c.DataDir, other.DataDir)
	setString(&c.Storage.Driver, other.Storage.Driver)
	setString(&c.Storage.SQLitePath, other.Storage.SQLitePath)
	setString(&c.Storage.PostgresDSN, other.Storage.PostgresDSN)
	setString(&c.Storage.Blob.Driver, other.Storage.Blob.Driver)
	setString(&c.Storage.Blob.FSRoot, other.Storage.Blob.FSRoot)
	setString(&c.Storage.Blob.Prefix, other.Storage.Blob.Prefix)
	setString(&c.Storage.Blob.S3.Bucket, other.Storage.Blob.S3.Bucket)
	setString(&c.Storage.Blob.S3.Region, other.Storage.Blob.S3.Region)
	setString(&c.Storage.Blob.S3.Endpoint, other.Storage.Blob.S3.Endpoint)
	setString(&c.Storage.Blob.S3.AccessKeyID, other.Storage.Blob.S3.AccessKeyID)
	setString(&c.Storage.Blob.S3.SecretAccessKey, other.Storage.Blob.S3.SecretAccessKey)
	setString(&c.Log.Level, other.Log.Level)
	setString(&c.Log.Format, other.Log.Format)
	setString(&c.ClientDeletePolicy, other.ClientDeletePolicy)
	setString(&c.MetricsFile, other.MetricsFile)
	c.StrictSave = c.StrictSave || other.StrictSave
	c.Storage.Blob.S3.PathStyle = c.Storage.Blob.S3.PathStyle || other.Storage.Blob.S3.PathStyle
}

// ApplyEnv applies EVENTDESK_* overrides found in environ (KEY=VALUE form,
// as returned by os.Environ).
func (c *Config) ApplyEnv(environ []string) error {
	env := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, EnvPrefix) {
			env[strings.TrimPrefix(key, EnvPrefix)] = value
		}
	}
	strs := map[string]*string{
		"DATA_DIR":                  &c.DataDir,
		"STORAGE_DRIVER":            &c.Storage.Driver,
		"SQLITE_PATH":               &c.Storage.SQLitePath,
		"POSTGRES_DSN":              &c.Storage.PostgresDSN,
		"BLOB_DRIVER":               &c.Storage.Blob.Driver,
		"BLOB_FS_ROOT":              &c.Storage.Blob.FSRoot,
		"BLOB_PREFIX":               &c.Storage.Blob.Prefix,
		"BLOB_S3_BUCKET":            &c.Storage.Blob.S3.Bucket,
		"BLOB_S3_REGION":            &c.Storage.Blob.S3.Region,
		"BLOB_S3_ENDPOINT":          &c.Storage.Blob.S3.Endpoint,
		"BLOB_S3_ACCESS_KEY_ID":     &c.Storage.Blob.S3.AccessKeyID,
		"BLOB_S3_SECRET_ACCESS_KEY": &c.Storage.Blob.S3.SecretAccessKey,
		"LOG_LEVEL":                 &c.Log.Level,
		"LOG_FORMAT":                &c.Log.Format,
		"CLIENT_DELETE_POLICY":      &c.ClientDeletePolicy,
		"METRICS_FILE":              &c.MetricsFile,
	}
	for key, dst := range strs {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
		}
	}
	bools := map[string]*bool{
		"STRICT_SAVE":        &c.StrictSave,
		"BLOB_S3_PATH_STYLE": &c.Storage.Blob.S3.PathStyle,
	}
	for key, dst := range bools {
		v, ok := env[key]
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}
	return nil
}

var (
	storageDrivers = map[string]bool{"file": true, "memory": true, "sqlite": true, "postgres": true, "blob": true}
	blobDrivers    = map[string]bool{"": true, "fs": true, "memory": true, "s3": true}
	logLevels      = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	logFormats     = map[string]bool{"console": true, "json": true}
	deletePolicies = map[string]bool{"allow": true, "restrict": true, "cascade": true}
)

// Validate rejects unknown enumerations and incomplete backend settings.
func (c Config) Validate() error {
	if !storageDrivers[c.Storage.Driver] {
		return fmt.Errorf("storage.driver: unsupported value %q", c.Storage.Driver)
	}
	if !blobDrivers[c.Storage.Blob.Driver] {
		return fmt.Errorf("storage.blob.driver: unsupported value %q", c.Storage.Blob.Driver)
	}
	if c.Storage.Driver == "blob" && c.Storage.Blob.Driver == "s3" && c.Storage.Blob.S3.Bucket == "" {
		return fmt.Errorf("storage.blob.s3.bucket: required for the s3 blob driver")
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level: unsupported value %q", c.Log.Level)
	}
	if !logFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	if !deletePolicies[strings.ToLower(c.ClientDeletePolicy)] {
		return fmt.Errorf("client_delete_policy: unsupported value %q", c.ClientDeletePolicy)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
