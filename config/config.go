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

type catalog struct {
	ProductsSource string `mapstructure:"products_source"`
	PageSize       int    `mapstructure:"page_size"`
}

type cart struct {
	StoragePath string `mapstructure:"storage_path"`
	StorageKey  string `mapstructure:"storage_key"`
}

type pricing struct {
	ShippingCost      float64 `mapstructure:"shipping_cost"`
	DiscountThreshold float64 `mapstructure:"discount_threshold"`
	DiscountRate      float64 `mapstructure:"discount_rate"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	EventsFile     string     `mapstructure:"events_file"`
	Catalog        catalog    `mapstructure:"catalog"`
	Cart           cart       `mapstructure:"cart"`
	Pricing        pricing    `mapstructure:"pricing"`
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
	EventsFile=%q

	Catalog:
	ProductsSource=%q
	PageSize=%d

	Cart:
	StoragePath=%q
	StorageKey=%q

	Pricing:
	ShippingCost=%v
	DiscountThreshold=%v
	DiscountRate=%v

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.EventsFile,
		c.Catalog.ProductsSource,
		c.Catalog.PageSize,
		c.Cart.StoragePath,
		c.Cart.StorageKey,
		c.Pricing.ShippingCost,
		c.Pricing.DiscountThreshold,
		c.Pricing.DiscountRate,
	)
}
