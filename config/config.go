package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type media struct {
	CloudinaryURL string `mapstructure:"cloudinary_url"`
	FallbackDir   string `mapstructure:"fallback_dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type brokerTLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	SeedBrokers  []string  `mapstructure:"seed_brokers"`
	TrafficTopic string    `mapstructure:"traffic_topic"`
	TLS          brokerTLS `mapstructure:"tls"`
}

type auth struct {
	Secret        string `mapstructure:"secret"`
	OwnerEmail    string `mapstructure:"owner_email"`
	OwnerPassword string `mapstructure:"owner_password"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	LocalStorePath string     `mapstructure:"local_store_path"`
	Auth           auth       `mapstructure:"auth"`
	Media          media      `mapstructure:"media"`
	Broker         broker     `mapstructure:"broker"`
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

// RemoteConfigured reports whether a remote DSN was supplied. The
// gateway decides actual remote mode from the DSN's parseability; a
// blank value always forces local-only operation.
func (c Config) RemoteConfigured() bool {
	return strings.TrimSpace(c.SQLDB) != ""
}

// BrokerConfigured reports whether traffic events stream to kafka.
func (c Config) BrokerConfigured() bool {
	return len(c.Broker.SeedBrokers) > 0 && c.Broker.TrafficTopic != ""
}

func (c Config) BrokerTLSConfigured() bool {
	t := c.Broker.TLS
	return t.CA != "" && t.Cert != "" && t.Key != ""
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

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	RemoteConfigured=%t
	LocalStorePath=%q

	Media:
	CloudinaryConfigured=%t
	FallbackDir=%q

	Broker:
	SeedBrokers=%q
	TrafficTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.RemoteConfigured(),
		c.LocalStorePath,
		c.Media.CloudinaryURL != "",
		c.Media.FallbackDir,
		c.Broker.SeedBrokers,
		c.Broker.TrafficTopic,
	)
}
