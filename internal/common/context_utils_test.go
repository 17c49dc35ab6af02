package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	page, limit := NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = NormalizePagination(-5, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = NormalizePagination(3, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestValidateStarRating(t *testing.T) {
	assert.Error(t, ValidateStarRating(0))
	assert.Error(t, ValidateStarRating(6))
	assert.NoError(t, ValidateStarRating(1))
	assert.NoError(t, ValidateStarRating(5))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-01-15", "start_date")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("15/01/2024", "start_date")
	assert.Error(t, err)
}

func TestValidateRequiredString(t *testing.T) {
	assert.Error(t, ValidateRequiredString("", "name"))
	assert.Error(t, ValidateRequiredString("   ", "name"))
	assert.NoError(t, ValidateRequiredString("x", "name"))
}

func TestGetUserIDFromContext(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), UserIDKey, "user-1")
	userID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))
	s := "hello"
	assert.Equal(t, "hello", SafeString(&s))
}
