package material

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	pkgerrors "github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("material not found")
)

type (
	Repository interface {
		ListMaterials(ctx context.Context) ([]Material, error)
		GetMaterial(ctx context.Context, id int) (Material, error)
		// CreateMaterial assigns the next free id (max + 1) and appends the material.
		CreateMaterial(ctx context.Context, m Material) (Material, error)
		UpdateMaterial(ctx context.Context, m Material) (Material, error)
		DeleteMaterial(ctx context.Context, id int) error
		// ReplaceMaterials swaps the whole list atomically.
		ReplaceMaterials(ctx context.Context, materials []Material) error
	}

	// Result is a filtered listing. Summary counts the type tabs before the type facet is applied.
	Result struct {
		Materials []Material `json:"materials"`
		Summary   Summary    `json:"summary"`
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(validate, "validate"),
	).CheckAndPanic()
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Material, error) {
	materials, err := svc.repo.ListMaterials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "listing materials")
	}
	Sort(materials, nil)
	return materials, nil
}

func (svc *Service) Query(ctx context.Context, filter Filter) (Result, error) {
	materials, err := svc.QueryAll(ctx)
	if err != nil {
		return Result{}, err
	}
	filter.Clean()

	tabs := filter
	tabs.Type = ""
	beforeType := Apply(materials, tabs)
	return Result{
		Materials: Apply(beforeType, Filter{Type: filter.Type}),
		Summary:   Summarize(beforeType),
	}, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Material, error) {
	return svc.repo.GetMaterial(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nm NewMaterial) (Material, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return Material{}, err
	}
	return svc.repo.CreateMaterial(ctx, Material{
		AvailableIn: nm.AvailableIn,
		Subject:     nm.Subject,
		Type:        nm.Type,
		DriveLink:   nm.DriveLink,
		Description: nm.Description,
	})
}

func (svc *Service) Update(ctx context.Context, id int, um UpdateMaterial) (Material, error) {
	orig, err := svc.repo.GetMaterial(ctx, id)
	if err != nil {
		return Material{}, err
	}
	if err = um.Validate(orig, svc.validate); err != nil {
		return Material{}, err
	}
	return svc.repo.UpdateMaterial(ctx, Material{
		ID:          id,
		AvailableIn: um.AvailableIn,
		Subject:     um.Subject,
		Type:        um.Type,
		DriveLink:   um.DriveLink,
		Description: *um.Description,
	})
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteMaterial(ctx, id)
}

func (svc *Service) ReplaceAll(ctx context.Context, materials []Material) error {
	return pkgerrors.Wrap(svc.repo.ReplaceMaterials(ctx, materials), "replacing materials")
}
