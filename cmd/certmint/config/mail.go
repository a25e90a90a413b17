package config

import (
	"github.com/pkg/errors"

	"github.com/certmint/certmint/mail"
)

// mailConf holds the SMTP configuration under the `mail` key.
//
// YAML example:
//
//	mail:
//	  enabled: true
//	  host: smtp.example.com
//	  port: 587
//	  user: certs@example.com
//	  password: secret
//	  from: certs@example.com
type mailConf struct {
	mail.Config `yaml:",inline"`
}

func (c *mailConf) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return errors.New("error in mail conf: host must be specified")
	}
	if c.From == "" {
		return errors.New("error in mail conf: from must be specified")
	}
	return nil
}

var defaultMailConf = mailConf{
	Config: mail.Config{
		Port: 587,
	},
}
