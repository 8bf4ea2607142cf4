package echoapi_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/adspirelabs/punotes/apps/api/echo"
	"github.com/adspirelabs/punotes/core/blog"
	"github.com/adspirelabs/punotes/core/literature"
	"github.com/adspirelabs/punotes/core/material"
	"github.com/adspirelabs/punotes/core/resource"
)

func TestMaterialsAPI_Query(t *testing.T) {
	fx := setup(t)

	tests := []struct {
		name      string
		query     url.Values
		wantIDs   []int
		wantTotal int
	}{
		{name: "all", wantIDs: []int{1, 2, 3, 4, 5, 6}, wantTotal: 6},
		{name: "stream and semester", query: url.Values{"stream": {"bca"}, "semester": {"1"}}, wantIDs: []int{1, 2}, wantTotal: 2},
		{name: "stream only, case insensitive", query: url.Values{"stream": {"BCA"}, "semester": {"all"}}, wantIDs: []int{1, 2, 3, 6}, wantTotal: 4},
		{name: "semester only", query: url.Values{"semester": {"2"}}, wantIDs: []int{3, 4}, wantTotal: 2},
		{name: "same availability entry", query: url.Values{"stream": {"bba"}, "semester": {"2"}}, wantIDs: []int{4}, wantTotal: 1},
		{name: "type tab keeps tab counts", query: url.Values{"type": {"questionbank"}}, wantIDs: []int{2, 4}, wantTotal: 6},
		{name: "search subject", query: url.Values{"search": {"MATHEMATICS"}}, wantIDs: []int{2, 5}, wantTotal: 2},
		{name: "search type", query: url.Values{"search": {"literature"}}, wantIDs: []int{6}, wantTotal: 1},
		{name: "no match", query: url.Values{"search": {"quantum"}}, wantIDs: []int{}, wantTotal: 0},
		{name: "ordering", query: url.Values{"ordering": {"-subject"}}, wantIDs: []int{4, 6, 5, 1, 3, 2}, wantTotal: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, "/v1/materials?"+tt.query.Encode())
			fx.app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp MaterialsResponse
			unmarchall(t, rec, &resp)
			assert.Equal(t, tt.wantIDs, materialIDs(resp.Materials))
			assert.Equal(t, tt.wantTotal, resp.Summary.Total)
			assert.Len(t, resp.Streams, len(material.Streams))
			assert.Len(t, resp.Semesters, material.MaxSemester)
			assert.Equal(t, material.Types, resp.Types)
		})
	}
}

func TestMaterialsAPI_Retrieve(t *testing.T) {
	fx := setup(t)
	m, err := fx.materialSvc.Get(context.Background(), 1)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "found", path: "/v1/materials/1", wantCode: http.StatusOK, wantData: marchallObj(t, m)},
		{name: "unknown id", path: "/v1/materials/99", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "malformed id", path: "/v1/materials/abc", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			fx.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func resourceIDs(resources []resource.Resource) []int {
	ids := make([]int, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestResourcesAPI_Query(t *testing.T) {
	fx := setup(t)

	tests := []struct {
		name    string
		query   url.Values
		wantIDs []int
	}{
		{name: "sorted by title", wantIDs: []int{2, 3, 4, 1}},
		{name: "college", query: url.Values{"college": {"Nepal College of Information Technology"}}, wantIDs: []int{3, 1}},
		{name: "batch", query: url.Values{"batch": {"2021"}}, wantIDs: []int{4, 1}},
		{name: "type", query: url.Values{"type": {"Notes"}}, wantIDs: []int{2}},
		{name: "search", query: url.Values{"search": {"digital"}}, wantIDs: []int{3}},
		{name: "all facets", query: url.Values{"category": {"all"}, "college": {"all"}, "batch": {"all"}, "type": {"all"}}, wantIDs: []int{2, 3, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, "/v1/resources?"+tt.query.Encode())
			fx.app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp resource.Result
			unmarchall(t, rec, &resp)
			assert.Equal(t, tt.wantIDs, resourceIDs(resp.Resources))
			assert.Equal(t, []string{"Assignments", "Lab Reports", "Projects", "Video Lectures"}, resp.Categories)
			assert.Equal(t, []string{"2022", "2021"}, resp.Batches)
		})
	}
}

func TestLiteratureAPI_Query(t *testing.T) {
	fx := setup(t)

	tests := []struct {
		name    string
		query   url.Values
		wantIDs []int
	}{
		{name: "all", wantIDs: []int{1, 2, 3, 4}},
		{name: "category", query: url.Values{"category": {"Novel"}}, wantIDs: []int{2, 3}},
		{name: "type", query: url.Values{"type": {"Classic"}}, wantIDs: []int{1, 3}},
		{name: "search author", query: url.Values{"search": {"devkota"}}, wantIDs: []int{1}},
		{name: "category and type", query: url.Values{"category": {"Poetry"}, "type": {"Epic"}}, wantIDs: []int{1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, "/v1/literature?"+tt.query.Encode())
			fx.app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp literature.Result
			unmarchall(t, rec, &resp)
			ids := make([]int, 0, len(resp.Books))
			for _, b := range resp.Books {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, []string{"Novel", "Poetry"}, resp.Categories)
			assert.Equal(t, []string{"Classic", "Epic", "Historical", "Modern"}, resp.Types)
		})
	}
}

func TestBlogAPI(t *testing.T) {
	fx := setup(t)

	t.Run("query", func(t *testing.T) {
		tests := []struct {
			name    string
			query   url.Values
			wantIDs []int
		}{
			{name: "all", wantIDs: []int{1, 2, 3, 4}},
			{name: "category", query: url.Values{"category": {"For BBA Students"}}, wantIDs: []int{3}},
			{name: "search tag", query: url.Values{"search": {"career"}}, wantIDs: []int{2, 3}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newRequest(http.MethodGet, "/v1/blog?"+tt.query.Encode())
				fx.app.ServeHTTP(rec, req)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

				var resp blog.Result
				unmarchall(t, rec, &resp)
				ids := make([]int, 0, len(resp.Posts))
				for _, p := range resp.Posts {
					ids = append(ids, p.ID)
				}
				assert.Equal(t, tt.wantIDs, ids)
				require.Len(t, resp.Featured, 2)
				assert.Equal(t, 1, resp.Featured[0].ID)
				assert.Equal(t, 3, resp.Featured[1].ID)
				assert.Equal(t, blog.Categories, resp.Categories)
			})
		}
	})

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/blog/prepare-for-pu-board-exams")
		fx.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var post blog.Rendered
		unmarchall(t, rec, &post)
		assert.Equal(t, "May 12, 2024", post.FormattedDate)
		assert.True(t, strings.Contains(post.HTML, `<h2 id="start-with-the-syllabus">Start with the syllabus</h2>`), post.HTML)
		assert.Contains(t, post.HTML, "<strong>marks weightage</strong>")
	})

	t.Run("retrieve unknown", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
		req, rec := newRequest(http.MethodGet, "/v1/blog/nope")
		fx.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
