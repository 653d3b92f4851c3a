package group_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/group"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	groups map[int]*group.Group
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{groups: make(map[int]*group.Group), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, g *group.Group) (*group.Group, error) {
	g.ID = f.nextID
	f.nextID++
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeRepo) GetAll(_ context.Context, _, _ int) ([]group.Group, error) {
	all := make([]group.Group, 0, len(f.groups))
	for _, g := range f.groups {
		all = append(all, *g)
	}
	return all, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int) (*group.Group, error) {
	if g, ok := f.groups[id]; ok {
		return g, nil
	}
	return nil, group.ErrGroupNotFound
}

func (f *fakeRepo) Update(_ context.Context, g *group.Group) error {
	if _, ok := f.groups[g.ID]; !ok {
		return group.ErrGroupNotFound
	}
	f.groups[g.ID] = g
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.groups[id]; !ok {
		return group.ErrGroupNotFound
	}
	delete(f.groups, id)
	return nil
}

func newTestRouter() chi.Router {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	handler := group.NewHandler(group.NewService(newFakeRepo()), logger)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterAdminRoutes(router)
	return router
}

func doJSON(router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGroupCRUD(t *testing.T) {
	router := newTestRouter()

	t.Run("Create", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/groups", group.Group{Name: "IVT-101"})

		require.Equal(t, http.StatusCreated, rec.Code)

		var created group.Group
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, 1, created.ID)
		assert.Equal(t, "IVT-101", created.Name)
	})

	t.Run("Get", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/groups/1", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var got group.Group
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "IVT-101", got.Name)
	})

	t.Run("List", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/groups", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var all []group.Group
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
		assert.Len(t, all, 1)
	})

	t.Run("Update", func(t *testing.T) {
		rec := doJSON(router, http.MethodPut, "/groups/1", group.Group{Name: "IVT-102"})

		require.Equal(t, http.StatusOK, rec.Code)

		var updated group.Group
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "IVT-102", updated.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := doJSON(router, http.MethodDelete, "/groups/1", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(router, http.MethodGet, "/groups/1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGroupValidation(t *testing.T) {
	router := newTestRouter()

	t.Run("EmptyName", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/groups", group.Group{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NameTooLong", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/groups", group.Group{Name: strings.Repeat("x", 15)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/groups", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/groups/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		rec := doJSON(router, http.MethodPut, "/groups/42", group.Group{Name: "IVT-999"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
