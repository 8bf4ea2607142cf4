package dataset

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/material"
)

func TestLoadSeed(t *testing.T) {
	cat, err := LoadSeed()
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Materials)
	assert.NotEmpty(t, cat.Resources)
	assert.NotEmpty(t, cat.Books)
	assert.NotEmpty(t, cat.Posts)
	assert.Equal(t, "Computer Fundamentals", cat.Materials[0].Subject)
}

func TestDecodeMaterials(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantErr   bool
		wantField string
	}{
		{name: "not json", data: `[{"id":`, wantErr: true},
		{name: "trailing data", data: `[] []`, wantErr: true},
		{name: "not an array", data: `{"id":1}`, wantErr: true, wantField: "document"},
		{
			name:      "missing subject",
			data:      `[{"id":1,"availableIn":[{"stream":"bca","semester":"1"}],"type":["Notes"],"driveLink":"https://x"}]`,
			wantErr:   true,
			wantField: "0",
		},
		{
			name:    "unknown type",
			data:    `[{"id":1,"availableIn":[{"stream":"bca","semester":"1"}],"subject":"S","type":["Slides"],"driveLink":"https://x"}]`,
			wantErr: true,
		},
		{
			name:    "duplicate ids",
			data:    `[{"id":1,"availableIn":[{"stream":"bca","semester":"1"}],"subject":"A","type":"Notes","driveLink":"https://x"},{"id":1,"availableIn":[{"stream":"bca","semester":"1"}],"subject":"B","type":"Notes","driveLink":"https://x"}]`,
			wantErr: true,
		},
		{name: "empty list", data: `[]`},
		{
			name: "single string type",
			data: `[{"id":7,"availableIn":[{"stream":"BCA","semester":"1"}],"subject":"S","type":"Notes","driveLink":"https://x"}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMaterials([]byte(tt.data))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
			if tt.wantField != "" {
				vErr := err.(*core.ValidationError)
				require.NotEmpty(t, vErr.Fields)
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
			}
		})
	}
}

func TestMaterialCodec_RoundTrip(t *testing.T) {
	cat, err := LoadSeed()
	require.NoError(t, err)

	codec := MaterialCodec{}
	data, err := codec.EncodeMaterials(cat.Materials)
	require.NoError(t, err)
	got, err := codec.DecodeMaterials(data)
	require.NoError(t, err)
	assert.Equal(t, cat.Materials, got)

	empty, err := codec.EncodeMaterials(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(empty))
}

func TestDecodeStreamIsLowered(t *testing.T) {
	got, err := DecodeMaterials([]byte(`[{"id":7,"availableIn":[{"stream":"BCA","semester":"1"}],"subject":"S","type":"Notes","driveLink":"https://x"}]`))
	require.NoError(t, err)
	assert.Equal(t, material.TypeList{"Notes"}, got[0].Type)
	assert.Equal(t, "bca", got[0].AvailableIn[0].Stream)
}

func TestDiff(t *testing.T) {
	diff, err := Diff("studyMaterials.json", []byte("a\nb\n"), []byte("a\nc\n"))
	require.NoError(t, err)
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")

	diff, err = Diff("studyMaterials.json", []byte("a\n"), []byte("a\n"))
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"nepaliLiterature.json": {Data: []byte(`[{"id":1,"title":"T","author":"A","category":"C","type":[],"driveLink":"https://x"}]`)},
	}
	cat, err := LoadDir(fsys)
	require.NoError(t, err)
	assert.Len(t, cat.Books, 1)
	assert.Empty(t, cat.Materials)

	fsys["blogPosts.json"] = &fstest.MapFile{Data: []byte(`nope`)}
	_, err = LoadDir(fsys)
	assert.True(t, core.IsValidationError(err))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Materials ")
	require.NoError(t, err)
	assert.Equal(t, "studyMaterials.json", k.FileName())
	_, err = ParseKind("users")
	assert.Error(t, err)
}
