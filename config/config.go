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

type consumers struct {
	OrderSaverGroup string `mapstructure:"order_saver_group"`
}

type topics struct {
	OrderPlacedStream  string `mapstructure:"order_placed_stream"`
	ProductViewsStream string `mapstructure:"product_views_stream"`
	ProductViewsTable  string `mapstructure:"product_views_table"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type cart struct {
	CheckoutDelay time.Duration `mapstructure:"checkout_delay"`
}

type catalog struct {
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	LocalStorePath string     `mapstructure:"local_store_path"`
	Cart           cart       `mapstructure:"cart"`
	Catalog        catalog    `mapstructure:"catalog"`
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
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q
	LocalStorePath=%q

	Cart:
	CheckoutDelay=%q

	Catalog:
	SearchDebounce=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		OrderPlacedStream=%q
		ProductViewsStream=%q
		ProductViewsTable=%q
	Consumers:
		OrderSaverGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.LocalStorePath,
		c.Cart.CheckoutDelay,
		c.Catalog.SearchDebounce,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.OrderPlacedStream,
		c.Broker.Topics.ProductViewsStream,
		c.Broker.Topics.ProductViewsTable,
		c.Broker.Consumers.OrderSaverGroup,
	)
}
