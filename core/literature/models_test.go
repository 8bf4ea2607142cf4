package literature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var books = []Book{
	{ID: 1, Title: "Muna Madan", Author: "Laxmi Prasad Devkota", Category: "Poetry", Type: []string{"Epic", "Classic"}},
	{ID: 2, Title: "Seto Bagh", Author: "Diamond Shumsher Rana", Category: "Novel", Type: []string{"Historical"}, Description: "Rana era"},
	{ID: 3, Title: "Shirishko Phool", Author: "Parijat", Category: "Novel", Type: []string{"Modern", "Classic"}},
}

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "no filter", want: 3},
		{name: "author", filter: Filter{Search: "devkota"}, want: 1},
		{name: "description", filter: Filter{Search: "rana ERA"}, want: 1},
		{name: "category", filter: Filter{Category: "Novel"}, want: 2},
		{name: "type inclusion", filter: Filter{Type: "Classic"}, want: 2},
		{name: "category and type", filter: Filter{Category: "Novel", Type: "Classic"}, want: 1},
		{name: "all", filter: Filter{Category: "all", Type: "all"}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Apply(books, tt.filter), tt.want)
		})
	}
}

func TestFacetOptions(t *testing.T) {
	assert.Equal(t, []string{"Novel", "Poetry"}, Categories(books))
	assert.Equal(t, []string{"Classic", "Epic", "Historical", "Modern"}, Types(books))
}
