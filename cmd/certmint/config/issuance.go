package config

import (
	"net/url"

	"github.com/pkg/errors"
)

// issuanceConf holds the issuance-related configuration under the
// `issuance` key.
//
// YAML example:
//
//	issuance:
//	  base_url: https://certs.example.com
//	  certs_dir: /var/lib/certmint/certificates
//	  assets_dir: /etc/certmint/assets
type issuanceConf struct {
	// BaseURL is the public base address used in verification links.
	BaseURL string `yaml:"base_url"`
	// CertsDir is where rendered documents are stored.
	CertsDir string `yaml:"certs_dir"`
	// AssetsDir optionally holds signature.png and watermark.png.
	AssetsDir string `yaml:"assets_dir"`
}

func (c *issuanceConf) validate() error {
	if c.BaseURL == "" {
		return errors.New("error in issuance conf: base_url must be specified")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return errors.Wrap(err, "error in issuance conf: invalid base_url")
	}
	return nil
}

var defaultIssuanceConf = issuanceConf{
	CertsDir: "./certificates",
}
