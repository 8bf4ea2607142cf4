package echoapi

import (
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/contact"
	"github.com/adspirelabs/punotes/core/i18n"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/page"
	"github.com/adspirelabs/punotes/core/preference"
	"github.com/adspirelabs/punotes/core/resource"
	appfs "github.com/adspirelabs/punotes/fs"
)

const (
	siteTemplatesDir = "templates/site"
	siteLayout       = "_layout.gohtml"

	tmplPage       = "page"
	tmplMaterials  = "materials"
	tmplResources  = "resources"
	tmplLiterature = "literature"
	tmplBlog       = "blog"
	tmplPost       = "post"
	tmplNotFound   = "notfound"

	noticeCookie     = "notice_dismissed"
	noticeDateFormat = "2006-01-02"
)

type navItem struct {
	Key  string
	Path string
}

var siteNav = []navItem{
	{Key: "nav.home", Path: "/"},
	{Key: "nav.studyMaterials", Path: "/study-materials"},
	{Key: "nav.additionalResources", Path: "/additional-resources"},
	{Key: "nav.submitMaterials", Path: "/submit-materials"},
	{Key: "nav.faq", Path: "/faq"},
}

// pageRoutes are the informational pages served from the page store, by path.
var pageRoutes = map[string]string{
	"/":                 "home",
	"/about":            "about",
	"/faq":              "faq",
	"/contact-us":       "contact-us",
	"/support-us":       "support-us",
	"/submit-materials": "submit-materials",
	"/admin-materials":  "admin-materials",
}

type (
	siteRenderer struct {
		templates map[string]*template.Template
	}

	// siteTranslator binds the dictionary to the visitor's language for the `t` template func.
	siteTranslator struct {
		dict *i18n.Dictionary
		lang preference.Language
	}

	// viewData is the root object of every site template.
	viewData struct {
		Title  string
		Path   string
		Prefs  preference.Preferences
		Msg    siteTranslator
		Nav    []navItem
		Flash  string
		Notice *page.Notice
		Data   interface{}
	}
)

func newSiteRenderer() (*siteRenderer, error) {
	funcs := template.FuncMap{
		"t": func(tr siteTranslator, key string) string {
			return tr.dict.T(tr.lang, key)
		},
		"availability": material.FormatAvailability,
		"join":         strings.Join,
		"safeHTML":     func(s string) template.HTML { return template.HTML(s) }, // rendered markdown, raw HTML omitted
		"selected":     func(a, b string) bool { return strings.EqualFold(a, b) },
	}

	fps, err := fs.Glob(appfs.FS, path.Join(siteTemplatesDir, "*.gohtml"))
	if err != nil {
		return nil, errors.Wrap(err, "globbing site templates")
	}
	r := &siteRenderer{templates: make(map[string]*template.Template, len(fps))}
	for _, fp := range fps {
		fname := path.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		tmpl, err := template.New(fname).Funcs(funcs).ParseFS(appfs.FS, path.Join(siteTemplatesDir, siteLayout), fp)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fp)
		}
		r.templates[strings.TrimSuffix(fname, path.Ext(fname))] = tmpl.Option("missingkey=zero")
	}
	return r, nil
}

func (r *siteRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("site template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

type siteHandlers struct {
	opts *Options
}

func registerSite(e *echo.Echo, opts *Options) {
	h := siteHandlers{opts: opts}

	for p, slug := range pageRoutes {
		e.GET(p, h.page(slug))
	}
	e.POST("/contact-us", h.sendContact)
	e.POST("/notice/dismiss", h.dismissNotice)
	e.GET("/study-materials", h.materials)
	e.GET("/additional-resources", h.resources)
	e.GET("/nepali-literature", h.literature)
	e.GET("/blog", h.blog)
	e.GET("/blog/:slug", h.post)
}

func (h *siteHandlers) view(ctx echo.Context, title string, data interface{}) viewData {
	prefs := contextPreferences(ctx)
	vd := viewData{
		Title: title,
		Path:  ctx.Request().URL.Path,
		Prefs: prefs,
		Msg:   siteTranslator{dict: h.opts.Dictionary, lang: prefs.Language},
		Nav:   siteNav,
		Data:  data,
	}
	if !noticeDismissed(ctx) {
		vd.Notice = h.opts.Pages.Notice()
	}
	return vd
}

// noticeDismissed reports whether the visitor dismissed the notice today.
func noticeDismissed(ctx echo.Context) bool {
	c, err := ctx.Cookie(noticeCookie)
	return err == nil && c.Value == time.Now().Format(noticeDateFormat)
}

// dismissNotice hides the notice until the next day, then goes back to the page it was dismissed from.
func (h *siteHandlers) dismissNotice(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     noticeCookie,
		Value:    time.Now().Format(noticeDateFormat),
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	next := ctx.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		next = "/"
	}
	return ctx.Redirect(http.StatusSeeOther, next)
}

func (h *siteHandlers) page(slug string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		p, err := h.opts.Pages.Get(slug)
		if err != nil {
			return notFoundOr(err, "getting page")
		}
		return ctx.Render(http.StatusOK, tmplPage, h.view(ctx, p.Title, p))
	}
}

func (h *siteHandlers) sendContact(ctx echo.Context) error {
	p, err := h.opts.Pages.Get("contact-us")
	if err != nil {
		return notFoundOr(err, "getting page")
	}
	msg := contact.Message{
		Name:    ctx.FormValue("name"),
		Email:   ctx.FormValue("email"),
		Subject: ctx.FormValue("subject"),
		Message: ctx.FormValue("message"),
	}
	vd := h.view(ctx, p.Title, p)
	code := http.StatusOK
	if err = h.opts.ContactSvc.Send(msg); err != nil {
		vd.Flash = "Please fill in every field with a valid email address."
		code = http.StatusBadRequest
	} else {
		vd.Flash = "Thanks! Your message has been sent."
	}
	return ctx.Render(code, tmplPage, vd)
}

type (
	materialsView struct {
		Filter    material.Filter
		Result    material.Result
		Streams   []material.Option
		Semesters []material.Option
		Types     []string
	}

	resourcesView struct {
		Filter resource.Filter
		Result resource.Result
	}

	literatureView struct {
		Filter literature.Filter
		Result literature.Result
	}

	blogView struct {
		Filter blog.Filter
		Result blog.Result
	}
)

func (h *siteHandlers) materials(ctx echo.Context) error {
	var filter material.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to material.Filter")
	}
	res, err := h.opts.MaterialSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying materials")
	}
	filter.Clean()
	return ctx.Render(http.StatusOK, tmplMaterials, h.view(ctx, "Study Materials", materialsView{
		Filter:    filter,
		Result:    res,
		Streams:   material.Streams,
		Semesters: material.Semesters,
		Types:     material.Types,
	}))
}

func (h *siteHandlers) resources(ctx echo.Context) error {
	var filter resource.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to resource.Filter")
	}
	res, err := h.opts.ResourceSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	filter.Clean()
	return ctx.Render(http.StatusOK, tmplResources, h.view(ctx, "Additional Resources", resourcesView{Filter: filter, Result: res}))
}

func (h *siteHandlers) literature(ctx echo.Context) error {
	var filter literature.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to literature.Filter")
	}
	res, err := h.opts.LiteratureSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying literature")
	}
	filter.Clean()
	return ctx.Render(http.StatusOK, tmplLiterature, h.view(ctx, "Nepali Literature", literatureView{Filter: filter, Result: res}))
}

func (h *siteHandlers) blog(ctx echo.Context) error {
	var filter blog.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to blog.Filter")
	}
	res, err := h.opts.BlogSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	filter.Clean()
	return ctx.Render(http.StatusOK, tmplBlog, h.view(ctx, "Blog", blogView{Filter: filter, Result: res}))
}

func (h *siteHandlers) post(ctx echo.Context) error {
	post, err := h.opts.BlogSvc.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return notFoundOr(err, "getting post")
	}
	title := post.SEOTitle
	if title == "" {
		title = post.Title
	}
	return ctx.Render(http.StatusOK, tmplPost, h.view(ctx, title, post))
}

func (s *Server) renderNotFound(ctx echo.Context) error {
	h := siteHandlers{opts: &s.opts}
	return ctx.Render(http.StatusNotFound, tmplNotFound, h.view(ctx, "Page not found", nil))
}
