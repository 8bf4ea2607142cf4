package dig_container

import (
	"context"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/adspirelabs/punotes/apps/api/echo"
	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/chat"
	"github.com/adspirelabs/punotes/core/contact"
	"github.com/adspirelabs/punotes/core/dataset"
	"github.com/adspirelabs/punotes/core/i18n"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/page"
	"github.com/adspirelabs/punotes/core/preference"
	"github.com/adspirelabs/punotes/core/resource"
	appfs "github.com/adspirelabs/punotes/fs"
	emailsvc "github.com/adspirelabs/punotes/services/email"
	logsvc "github.com/adspirelabs/punotes/services/logger"
	snapshotsvc "github.com/adspirelabs/punotes/services/snapshot"
	watchsvc "github.com/adspirelabs/punotes/services/watcher"
	"github.com/adspirelabs/punotes/storage/database"
	inmemdb "github.com/adspirelabs/punotes/storage/database/inmem"
	pgrepos "github.com/adspirelabs/punotes/storage/database/postgres"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	materialRepoParam struct {
		dig.In
		Conf   *core.Config
		MemDB  *inmemdb.DB
		PgDB   *sqlx.DB    `optional:"true"`
		Logger core.Logger `name:"dbLogger"`
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newCatalogDB loads the catalog from the configured data dir, or from the embedded seed.
func newCatalogDB(conf *core.Config, loggerParam DBLoggerParam) (*inmemdb.DB, error) {
	fsys := dataset.Seed()
	if conf.Catalog.DataDir != "" {
		fsys = os.DirFS(conf.Catalog.DataDir)
	}
	db := inmemdb.Open()
	if err := db.LoadDir(fsys); err != nil {
		return nil, err
	}
	loggerParam.Logger.Info("catalog loaded")
	return db, nil
}

// newPostgres is only called when the postgres engine is configured.
func newPostgres(conf *core.Config) (*sqlx.DB, error) {
	db, err := database.Open(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newMaterialRepository serves materials from postgres when configured, seeding an empty
// table from the loaded catalog; from the in-memory catalog otherwise.
func newMaterialRepository(p materialRepoParam) (material.Repository, error) {
	memRepo := inmemdb.NewMaterialRepository(p.MemDB)
	if p.PgDB == nil {
		return memRepo, nil
	}

	ctx := context.Background()
	repo := pgrepos.NewMaterialRepository(p.PgDB)
	existing, err := repo.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		seed, err := memRepo.ListMaterials(ctx)
		if err != nil {
			return nil, err
		}
		if err = repo.ReplaceMaterials(ctx, seed); err != nil {
			return nil, errors.Wrap(err, "seeding material table")
		}
		p.Logger.Info("material table seeded")
	}
	return repo, nil
}

func newWorkspace(live *material.Service, validate *validator.Validate) (*material.Workspace, error) {
	ws := material.NewWorkspace(inmemdb.NewMaterialRepository(inmemdb.Open()), live, dataset.MaterialCodec{}, validate)
	if err := ws.Reset(context.Background()); err != nil {
		return nil, errors.Wrap(err, "initializing admin draft")
	}
	return ws, nil
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newContactService(conf *core.Config, mailSvc core.EmailService, validate *validator.Validate) (*contact.Service, error) {
	return contact.NewService(mailSvc, validate, conf.Email.ContactRecipients)
}

func newSnapshotStore(conf *core.Config) (core.SnapshotStore, error) {
	return snapshotsvc.New(context.Background(), conf)
}

// newWatcher returns nil unless catalog watching is enabled on a data dir.
func newWatcher(conf *core.Config, db *inmemdb.DB, loggerParam DBLoggerParam) *watchsvc.Watcher {
	if !conf.Catalog.Watch || conf.Catalog.DataDir == "" {
		return nil
	}
	dir := conf.Catalog.DataDir
	return watchsvc.New(dir, watchsvc.DefaultDebounce, loggerParam.Logger, func() error {
		return db.LoadDir(os.DirFS(dir))
	})
}

func newTranslator() ut.Translator {
	return core.NewTranslator()
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	material.RegisterValidators(validate, translator)
	preference.RegisterValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newCatalogDB))
	must(c.Provide(newMaterialRepository))
	must(c.Provide(material.NewService))
	must(c.Provide(newWorkspace))
	must(c.Provide(func(db *inmemdb.DB) *resource.Service {
		return resource.NewService(inmemdb.NewResourceRepository(db))
	}))
	must(c.Provide(func(db *inmemdb.DB) *literature.Service {
		return literature.NewService(inmemdb.NewLiteratureRepository(db))
	}))
	must(c.Provide(func(db *inmemdb.DB) *blog.Service {
		return blog.NewService(inmemdb.NewBlogRepository(db))
	}))
	must(c.Provide(func(conf *core.Config) *chat.Responder {
		return chat.NewResponder(conf.Chat.ReplyDelay)
	}))
	must(c.Provide(func() (*i18n.Dictionary, error) { return i18n.Load(appfs.FS, "i18n") }))
	must(c.Provide(func() (*page.Store, error) { return page.Load(appfs.FS, "pages/**/*.md") }))
	must(c.Provide(newEmailService))
	must(c.Provide(newContactService))
	must(c.Provide(newSnapshotStore))
	must(c.Provide(newWatcher))
	must(c.Provide(echoapi.NewServer))

	return c
}

// ProvidePostgres registers the postgres connection; the material repository then uses it.
func ProvidePostgres(c *dig.Container) {
	must(c.Provide(newPostgres))
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
