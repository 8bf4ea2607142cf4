package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/chat"
	"github.com/adspirelabs/punotes/core/contact"
	"github.com/adspirelabs/punotes/core/i18n"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/page"
	"github.com/adspirelabs/punotes/core/resource"
)

// Options holds the dependencies of the Server. It is filled by the dig container.
type Options struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator

	MaterialSvc   *material.Service
	ResourceSvc   *resource.Service
	LiteratureSvc *literature.Service
	BlogSvc       *blog.Service
	Workspace     *material.Workspace
	Responder     *chat.Responder
	Dictionary    *i18n.Dictionary
	Pages         *page.Store
	ContactSvc    *contact.Service
	Snapshots     core.SnapshotStore `optional:"true"`

	DisableReqLogs bool `optional:"true"`
}

type Server struct {
	opts     Options
	app      *echo.Echo
	jwtConf  middleware.JWTConfig
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(opts Options) *Server {
	vala.BeginValidation().Validate(
		vala.IsNotNil(opts.Conf, "Conf"),
		vala.IsNotNil(opts.Logger, "Logger"),
		vala.IsNotNil(opts.Validate, "Validate"),
		vala.IsNotNil(opts.Translator, "Translator"),
		vala.IsNotNil(opts.MaterialSvc, "MaterialSvc"),
		vala.IsNotNil(opts.ResourceSvc, "ResourceSvc"),
		vala.IsNotNil(opts.LiteratureSvc, "LiteratureSvc"),
		vala.IsNotNil(opts.BlogSvc, "BlogSvc"),
		vala.IsNotNil(opts.Workspace, "Workspace"),
		vala.IsNotNil(opts.Responder, "Responder"),
		vala.IsNotNil(opts.Dictionary, "Dictionary"),
		vala.IsNotNil(opts.Pages, "Pages"),
		vala.IsNotNil(opts.ContactSvc, "ContactSvc"),
	).CheckAndPanic()

	s := &Server{
		opts:     opts,
		app:      echo.New(),
		jwtConf:  newJWTConfig(opts.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.renderNotFound, s.signalShutdown)
	s.app.Debug = conf.Debug

	site, err := newSiteRenderer()
	if err != nil {
		s.opts.Logger.Fatal("parsing site templates", err)
	}
	s.app.Renderer = site
	registerSite(s.app, &s.opts)

	v1 := s.app.Group("/v1")
	v1.GET("", s.home)
	jwt := middleware.JWTWithConfig(s.jwtConf)

	registerCatalogAPI(v1, &s.opts)
	registerChatAPI(v1, s.opts.Responder)
	registerI18nAPI(v1, s.opts.Dictionary, s.opts.Validate)
	registerPageAPI(v1, s.opts.Pages)
	registerContactAPI(v1, s.opts.ContactSvc)
	registerAdminAPI(v1, jwt, s)
}

// Start listens on the configured address. Listener errors are sent on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.opts.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.Conf.AppName+" API!")
}
