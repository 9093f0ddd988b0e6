// Package config resolves usbode's runtime configuration from flags,
// environment variables, a config file, and built-in defaults, in that
// order of precedence.
package config

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/usbode/usbode/cdrom"
)

// Config is the resolved set of values a running usbode instance needs:
// SCSI identity strings, the backing disc image, and the ambient log
// settings.
type Config struct {
	VendorID       uint16 `mapstructure:"vendor_id"`
	ProductID      uint16 `mapstructure:"product_id"`
	VendorString   string `mapstructure:"vendor_string"`
	ProductString  string `mapstructure:"product_string"`
	RevisionString string `mapstructure:"revision_string"`
	CuePath        string `mapstructure:"cue_path"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	// HardwareID seeds the unit serial number (§6). Zero means "not
	// configured"; ResolveHardwareID substitutes a generated one.
	HardwareID uint32 `mapstructure:"hardware_id"`
}

// Load reads usbode.{yaml,json,...} from the working directory, ./config,
// $HOME/.usbode, or /etc/usbode, falling back to built-in defaults for
// anything unset. Environment variables prefixed USBODE_ override the file;
// callers may layer flag values on top via viper.BindPFlag before calling
// Load, matching cobra+viper's flags>env>file>defaults precedence.
func Load() (*Config, error) {
	viper.SetConfigName("usbode")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.usbode")
	viper.AddConfigPath("/etc/usbode")

	viper.SetDefault("vendor_id", 0x0525)
	viper.SetDefault("product_id", 0xA4A5)
	viper.SetDefault("vendor_string", "USBODE  ")
	viper.SetDefault("product_string", "Virtual CDROM   ")
	viper.SetDefault("revision_string", "1.00")
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("hardware_id", 0)

	viper.SetEnvPrefix("USBODE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ResolveHardwareID returns the configured hardware identifier, or a
// generated one when none was configured. The generated value is stored in
// HardwareID, so it is stable for the life of the Config but not across
// restarts, since no platform hardware-identifier source is wired in.
func (c *Config) ResolveHardwareID() uint32 {
	if c.HardwareID != 0 {
		return c.HardwareID
	}
	id := uuid.New()
	c.HardwareID = binary.BigEndian.Uint32(id[:4])
	return c.HardwareID
}

// Serial derives the unit serial number string from the hardware
// identifier, per §6.
func (c *Config) Serial() string {
	return cdrom.GenerateSerial(c.ResolveHardwareID(), true)
}
