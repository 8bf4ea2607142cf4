package material

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	pkgerrors "github.com/pkg/errors"
)

// Codec converts a material list to and from its JSON dataset form.
type Codec interface {
	EncodeMaterials(materials []Material) ([]byte, error)
	DecodeMaterials(data []byte) ([]Material, error)
}

// Workspace is the admin draft list. It lives in memory only: edits never reach the
// live catalog. Durable changes go through Export and a manual import/redeploy.
type Workspace struct {
	draft *Service
	live  *Service
	codec Codec
}

// NewWorkspace panics on a nil dependency. codec may be a struct value.
func NewWorkspace(draftRepo Repository, live *Service, codec Codec, validate *validator.Validate) *Workspace {
	vala.BeginValidation().Validate(
		vala.IsNotNil(draftRepo, "draftRepo"),
		vala.IsNotNil(live, "live"),
	).CheckAndPanic()
	if codec == nil { // vala cannot check struct kinds
		panic("Parameter was nil: codec")
	}
	return &Workspace{
		draft: NewService(draftRepo, validate),
		live:  live,
		codec: codec,
	}
}

// Reset discards the draft and starts over from the live catalog.
func (ws *Workspace) Reset(ctx context.Context) error {
	materials, err := ws.live.QueryAll(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "loading live catalog")
	}
	return ws.draft.ReplaceAll(ctx, materials)
}

func (ws *Workspace) List(ctx context.Context) ([]Material, error) {
	return ws.draft.QueryAll(ctx)
}

func (ws *Workspace) Get(ctx context.Context, id int) (Material, error) {
	return ws.draft.Get(ctx, id)
}

func (ws *Workspace) Add(ctx context.Context, nm NewMaterial) (Material, error) {
	return ws.draft.Create(ctx, nm)
}

func (ws *Workspace) Update(ctx context.Context, id int, um UpdateMaterial) (Material, error) {
	return ws.draft.Update(ctx, id, um)
}

func (ws *Workspace) Delete(ctx context.Context, id int) error {
	return ws.draft.Delete(ctx, id)
}

// Export returns the draft as an indented JSON array.
func (ws *Workspace) Export(ctx context.Context) ([]byte, error) {
	materials, err := ws.draft.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	return ws.codec.EncodeMaterials(materials)
}

// Import replaces the draft with the decoded list. The draft is left untouched when data is invalid.
func (ws *Workspace) Import(ctx context.Context, data []byte) ([]Material, error) {
	materials, err := ws.codec.DecodeMaterials(data)
	if err != nil {
		return nil, err
	}
	if err = ws.draft.ReplaceAll(ctx, materials); err != nil {
		return nil, err
	}
	return ws.draft.QueryAll(ctx)
}
