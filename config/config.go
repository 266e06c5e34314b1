package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type objectStore struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	ProductBucket string `mapstructure:"product_bucket"`
	BlogBucket    string `mapstructure:"blog_bucket"`
}

type Config struct {
	LogLevel       slog.Level  `mapstructure:"log_level"`
	HTTPServerAddr string      `mapstructure:"http_server_addr"`
	PublicBaseURL  string      `mapstructure:"public_base_url"`
	PostgresDSN    string      `mapstructure:"postgres_dsn"`
	DataDir        string      `mapstructure:"data_dir"`
	UploadsDir     string      `mapstructure:"uploads_dir"`
	Auth           auth        `mapstructure:"auth"`
	ObjectStore    objectStore `mapstructure:"object_store"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

// ManagedStoreConfigured reports whether the managed object store should
// be probed at all.
func (c Config) ManagedStoreConfigured() bool {
	return c.ObjectStore.Endpoint != ""
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	PublicBaseURL=%q
	PostgresDSN=set:%t
	DataDir=%q
	UploadsDir=%q

	Auth:
	JWTSecret=set:%t
	TokenTTL=%q

	ObjectStore:
	Endpoint=%q
	AccessKey=set:%t
	UseSSL=%t
	ProductBucket=%q
	BlogBucket=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.PublicBaseURL,
		c.PostgresDSN != "",
		c.DataDir,
		c.UploadsDir,
		c.Auth.JWTSecret != "",
		c.Auth.TokenTTL,
		c.ObjectStore.Endpoint,
		c.ObjectStore.AccessKey != "",
		c.ObjectStore.UseSSL,
		c.ObjectStore.ProductBucket,
		c.ObjectStore.BlogBucket,
	)
}
