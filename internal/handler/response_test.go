package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse(t *testing.T) {
	r := httptest.NewRequest("GET", "/subtasks?page=2", nil)

	resp := NewPaginatedResponse(r, 30, 2, 10, []int{})
	assert.Equal(t, 30, resp.Count)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "/subtasks?page=3", *resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "/subtasks?page=1", *resp.Previous)
}

func TestNewPaginatedResponseFirstPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/tasks", nil)

	resp := NewPaginatedResponse(r, 15, 1, 10, []int{})
	require.NotNil(t, resp.Next)
	assert.Equal(t, "/tasks?page=2", *resp.Next)
	assert.Nil(t, resp.Previous)
}

func TestNewPaginatedResponseLastPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/tasks?page=2", nil)

	resp := NewPaginatedResponse(r, 15, 2, 10, []int{})
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
}

func TestNewPaginatedResponseKeepsQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/subtasks?completed=true&page=2", nil)

	resp := NewPaginatedResponse(r, 30, 2, 10, []int{})
	require.NotNil(t, resp.Next)
	assert.Equal(t, "/subtasks?completed=true&page=3", *resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "/subtasks?completed=true&page=1", *resp.Previous)
}

func TestNewPaginatedResponseSinglePage(t *testing.T) {
	r := httptest.NewRequest("GET", "/tasks", nil)

	resp := NewPaginatedResponse(r, 5, 1, 10, []int{})
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}
