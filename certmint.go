package certmint

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/certmint/certmint/api/certapi"
	"github.com/certmint/certmint/mail"
	"github.com/certmint/certmint/storage/model"
)

// Config holds the issuance-related configuration of a CertMint server.
type Config struct {
	// BaseURL is the public base address used to build verification links.
	BaseURL string
	// CertsDir is the directory rendered documents are stored in.
	CertsDir string
	// AssetsDir optionally holds branding assets (signature, watermark).
	AssetsDir string
	// AdminToken is the shared bearer secret protecting the admin API.
	AdminToken string
}

// CertMint is a certificate issuance and verification server.
type CertMint struct {
	server     *fiber.App
	serverConf ServerConf
	issuer     *Issuer
	verifier   *Verifier
}

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

func handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		// Internal details stay in the log.
		return ctx.Status(code).JSON(fiber.Map{"message": "Server error"})
	}
	return ctx.Status(code).JSON(fiber.Map{"message": err.Error()})
}

// NewCertMint creates a new CertMint server. It prepares the artifact
// directory, mounts the public issuance, verification and document routes
// and the bearer-protected admin API. mailer may be nil; autoEmail
// requests are then answered without a mail being sent.
func NewCertMint(
	serverConf ServerConf, conf Config, storages model.Backends, mailer *mail.Mailer,
) (*CertMint, error) {
	if conf.BaseURL == "" {
		return nil, errors.New("certmint: base url is required")
	}
	if conf.CertsDir == "" {
		conf.CertsDir = "./certificates"
	}
	if err := os.MkdirAll(conf.CertsDir, 0755); err != nil {
		return nil, errors.Wrap(err, "certmint: failed to create certificate directory")
	}

	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		FiberServerConfig.TrustedProxies = tps
		FiberServerConfig.EnableTrustedProxyCheck = true
	}
	FiberServerConfig.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(FiberServerConfig)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New())
	server.Use(requestid.New())

	cm := &CertMint{
		server:     server,
		serverConf: serverConf,
		issuer:     NewIssuer(conf.BaseURL, conf.CertsDir, conf.AssetsDir, storages.Certificates),
		verifier:   NewVerifier(storages.Certificates),
	}

	// Rendered documents are served at their stable public path.
	server.Static("/certificates", conf.CertsDir)

	api := server.Group("/api/certificates")
	cm.addGenerateEndpoint(api, mailer)
	cm.addVerifyEndpoint(api)
	certapi.Register(
		api, certapi.Config{
			AdminToken: conf.AdminToken,
			CertsDir:   conf.CertsDir,
		}, storages,
	)

	return cm, nil
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all the necessary endpoints
func (cm CertMint) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(cm.server)
}

// Listen starts an http server at the specific address for serving all the
// necessary endpoints
func (cm CertMint) Listen(addr string) error {
	return cm.server.Listen(addr)
}

func (cm CertMint) Start() {
	conf := cm.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(cm.server.Listen(fmt.Sprintf("%s:%d", conf.IPListen, conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(":80")).Fatal()
		}()
	}
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(cm.server.ListenTLS(":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
