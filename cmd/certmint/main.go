package main

import (
	"os"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/certmint/certmint"
	"github.com/certmint/certmint/cmd/certmint/config"
	"github.com/certmint/certmint/internal/cache"
	"github.com/certmint/certmint/internal/logger"
	"github.com/certmint/certmint/internal/version"
	"github.com/certmint/certmint/mail"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	logger.Init()
	log.WithField("version", version.VERSION).Info("Starting CertMint")
	log.Info("Loaded Config")
	c := config.Get()

	if redisAddr := c.Caching.RedisAddr; redisAddr != "" {
		if err := cache.UseRedisCache(
			&redis.Options{
				Addr: redisAddr,
			},
		); err != nil {
			log.WithError(err).Fatal("could not init redis cache")
		}
		log.Info("Loaded Redis Cache")
	}

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	var mailer *mail.Mailer
	if c.Mail.Enabled {
		mailer = mail.NewMailer(c.Mail.Config)
		log.Info("Loaded Mail Transport")
	}

	cm, err := certmint.NewCertMint(
		c.Server,
		certmint.Config{
			BaseURL:    c.Issuance.BaseURL,
			CertsDir:   c.Issuance.CertsDir,
			AssetsDir:  c.Issuance.AssetsDir,
			AdminToken: c.API.Admin.Token,
		},
		backs,
		mailer,
	)
	if err != nil {
		log.Fatal(err)
	}
	log.Info("Initialized Server")

	cm.Start()
}
