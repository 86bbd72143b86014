package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table",
		[]string{"id", "code", "name", "version"},
		func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		spec string
		want string
	}{
		{"", "name ASC"},
		{"name", "name ASC"},
		{"-name", "name DESC"},
		{"code", "code ASC"},
		{"-code", "code DESC"},
	}
	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.spec)
		require.NoError(t, err, "spec %q", tt.spec)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseOrderBy_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	for _, spec := range []string{"password_hash", "-secret", "name; DROP TABLE users"} {
		_, err := repo.parseOrderBy(spec)
		assert.True(t, apperror.IsValidation(err), "spec %q must be rejected", spec)
	}
}

func TestBaseSelect_SQL(t *testing.T) {
	repo := newTestRepo()

	sql, _, err := repo.baseSelect().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, code, name, version FROM test_table", sql)
}
