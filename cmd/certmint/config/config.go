package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/certmint/certmint"
)

// Config holds the complete server configuration.
type Config struct {
	Server   certmint.ServerConf `yaml:"server"`
	Issuance issuanceConf        `yaml:"issuance"`
	API      apiConf             `yaml:"api"`
	Storage  storageConf         `yaml:"storage"`
	Mail     mailConf            `yaml:"mail"`
	Caching  cacheConf           `yaml:"caching"`
	Logging  loggingConf         `yaml:"logging"`
}

var conf *Config

// Get returns the loaded Config
func Get() *Config {
	return conf
}

// possibleConfigLocations are checked in order when no config file is
// passed explicitly.
var possibleConfigLocations = []string{
	"config.yaml",
	"/etc/certmint/config.yaml",
}

// Load reads and validates the configuration from the passed file. If
// file is empty, the default locations are tried in order. Any error is
// fatal.
func Load(file string) {
	if file == "" {
		for _, loc := range possibleConfigLocations {
			if _, err := os.Stat(loc); err == nil {
				file = loc
				break
			}
		}
	}
	if file == "" {
		log.Fatal("no config file found")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Fatal("could not read config file")
	}

	c := Config{
		Server:   certmint.ServerConf{Port: 5000},
		Issuance: defaultIssuanceConf,
		Storage:  defaultStorageConf,
		Mail:     defaultMailConf,
		Logging:  defaultLoggingConf,
	}
	if err = yaml.Unmarshal(data, &c); err != nil {
		log.WithError(err).Fatal("could not parse config file")
	}
	if err = c.validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	conf = &c
}

func (c *Config) validate() error {
	if err := c.Issuance.validate(); err != nil {
		return err
	}
	if err := c.API.validate(); err != nil {
		return err
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	if err := c.Mail.validate(); err != nil {
		return err
	}
	return c.Logging.validate()
}
