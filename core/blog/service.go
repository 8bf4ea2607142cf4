package blog

import (
	"context"
	"errors"

	"github.com/kat-co/vala"
	pkgerrors "github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
)

var (
	// errors
	ErrNotFound = errors.New("post not found")
)

type (
	Repository interface {
		ListPosts(ctx context.Context) ([]Post, error)
		GetPostBySlug(ctx context.Context, slug string) (Post, error)
		ReplacePosts(ctx context.Context, posts []Post) error
	}

	Result struct {
		Posts      []Post   `json:"posts"`
		Featured   []Post   `json:"featured"`
		Categories []string `json:"categories"`
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Post, error) {
	posts, err := svc.repo.ListPosts(ctx)
	return posts, pkgerrors.Wrap(err, "listing posts")
}

// Query filters the posts. Featured posts are taken from the unfiltered list.
func (svc *Service) Query(ctx context.Context, filter Filter) (Result, error) {
	posts, err := svc.QueryAll(ctx)
	if err != nil {
		return Result{}, err
	}
	filter.Clean()
	return Result{
		Posts:      Apply(posts, filter),
		Featured:   Featured(posts),
		Categories: Categories,
	}, nil
}

func (svc *Service) GetBySlug(ctx context.Context, slug string) (Rendered, error) {
	post, err := svc.repo.GetPostBySlug(ctx, core.CleanString(slug, true /* lower */))
	if err != nil {
		return Rendered{}, err
	}
	html, err := core.RenderMarkdown([]byte(post.Content))
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Post: post, FormattedDate: post.FormattedDate(), HTML: html}, nil
}

func (svc *Service) ReplaceAll(ctx context.Context, posts []Post) error {
	return pkgerrors.Wrap(svc.repo.ReplacePosts(ctx, posts), "replacing posts")
}
