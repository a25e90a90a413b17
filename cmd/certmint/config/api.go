package config

import (
	log "github.com/sirupsen/logrus"
)

// apiConf holds API-related configuration
type apiConf struct {
	Admin adminAPIConf `yaml:"admin"`
}

type adminAPIConf struct {
	// Token is the shared bearer secret for admin routes.
	Token string `yaml:"token"`
}

func (c *apiConf) validate() error {
	if c.Admin.Token == "" {
		// Not fatal, but every admin request will be rejected.
		log.Warn("no admin api token configured, admin endpoints are unusable")
	}
	return nil
}
