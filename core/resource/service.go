package resource

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

type (
	Repository interface {
		ListResources(ctx context.Context) ([]Resource, error)
		ReplaceResources(ctx context.Context, resources []Resource) error
	}

	Result struct {
		Resources []Resource `json:"resources"`
		Facets
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

// QueryAll returns every resource sorted by title.
func (svc *Service) QueryAll(ctx context.Context) ([]Resource, error) {
	resources, err := svc.repo.ListResources(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing resources")
	}
	SortByTitle(resources)
	return resources, nil
}

// Query filters the title-sorted listing. Facet options are computed on the unfiltered listing.
func (svc *Service) Query(ctx context.Context, filter Filter) (Result, error) {
	resources, err := svc.QueryAll(ctx)
	if err != nil {
		return Result{}, err
	}
	filter.Clean()
	return Result{Resources: Apply(resources, filter), Facets: FacetsOf(resources)}, nil
}

func (svc *Service) ReplaceAll(ctx context.Context, resources []Resource) error {
	return errors.Wrap(svc.repo.ReplaceResources(ctx, resources), "replacing resources")
}
