// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/author"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// fakeRepository keeps authors in memory; credited ids reject deletion
// the way the catalog.bookauthor foreign key does.
type fakeRepository struct {
	authors  map[int]*author.Author
	credited map[int]bool
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{authors: map[int]*author.Author{}, credited: map[int]bool{}, nextID: 1}
}

func (repository *fakeRepository) ListAuthors(context.Context, author.Filter, int, int) ([]*author.Author, int, error) {
	var out []*author.Author
	for _, a := range repository.authors {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (repository *fakeRepository) GetAuthor(_ context.Context, id int) (*author.Author, error) {
	a, ok := repository.authors[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return a, nil
}

func (repository *fakeRepository) CreateAuthor(_ context.Context, a *author.Author) error {
	a.ID = repository.nextID
	repository.nextID++
	repository.authors[a.ID] = a
	return nil
}

func (repository *fakeRepository) UpdateAuthor(_ context.Context, a *author.Author) error {
	if _, ok := repository.authors[a.ID]; !ok {
		return dberr.ErrNotFound
	}
	repository.authors[a.ID] = a
	return nil
}

func (repository *fakeRepository) DeleteAuthor(_ context.Context, id int) error {
	if repository.credited[id] {
		return apperr.Conflict("The record is referenced by, or references, a missing record")
	}
	if _, ok := repository.authors[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.authors, id)
	return nil
}

func newService(repository author.Repository) *author.Service {
	return author.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_CreateAuthor(t *testing.T) {
	service := newService(newFakeRepository())

	created, err := service.CreateAuthor(context.Background(), author.Input{Name: "  Ann Lee "})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", created.Name)

	_, err = service.CreateAuthor(context.Background(), author.Input{Name: ""})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_UpdateAuthor_Missing(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.UpdateAuthor(context.Background(), 9, author.Input{Name: "Bo Chen"})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "Author")
}

/*
TestService_DeleteAuthor rejects credited authors with a Conflict.
*/
func TestService_DeleteAuthor(t *testing.T) {
	repository := newFakeRepository()
	service := newService(repository)
	ctx := context.Background()

	credited, err := service.CreateAuthor(ctx, author.Input{Name: "Ann Lee"})
	require.NoError(t, err)
	repository.credited[credited.ID] = true

	err = service.DeleteAuthor(ctx, credited.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	free, err := service.CreateAuthor(ctx, author.Input{Name: "Bo Chen"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteAuthor(ctx, free.ID))

	err = service.DeleteAuthor(ctx, free.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
