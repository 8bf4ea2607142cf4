package literature

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

type (
	Repository interface {
		ListBooks(ctx context.Context) ([]Book, error)
		ReplaceBooks(ctx context.Context, books []Book) error
	}

	Result struct {
		Books      []Book   `json:"books"`
		Categories []string `json:"categories"`
		Types      []string `json:"types"`
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Book, error) {
	books, err := svc.repo.ListBooks(ctx)
	return books, errors.Wrap(err, "listing books")
}

func (svc *Service) Query(ctx context.Context, filter Filter) (Result, error) {
	books, err := svc.QueryAll(ctx)
	if err != nil {
		return Result{}, err
	}
	filter.Clean()
	return Result{
		Books:      Apply(books, filter),
		Categories: Categories(books),
		Types:      Types(books),
	}, nil
}

func (svc *Service) ReplaceAll(ctx context.Context, books []Book) error {
	return errors.Wrap(svc.repo.ReplaceBooks(ctx, books), "replacing books")
}
