package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() error {
	if err := os.MkdirAll(c.GetLogDir(), 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.GetDataDir(), 0o755)
}

// DefaultAppConfig is the built-in configuration, overridden first by the
// YAML file and then by environment variables.
var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "eazybuy",
		Location: "Asia/Jakarta",
		Workdir:  "/var/eazybuy",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1880,
		Secret: "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "eazybuy",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/eazybuy/eazybuy.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	var i int64
	if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
		f(i)
	}
}

// LoadConfig reads the configuration file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(fmt.Errorf("parse config %s: %w", cfile, err))
			}
		}
	}

	setEnvValue("EAZYBUY_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("EAZYBUY_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = v == "true" })
	setEnvValue("EAZYBUY_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("EAZYBUY_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("EAZYBUY_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("EAZYBUY_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("EAZYBUY_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("EAZYBUY_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("EAZYBUY_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("EAZYBUY_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("EAZYBUY_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("EAZYBUY_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}
