package utils

import (
	"context"
	"math"
	"testing"

	"jua-kali/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Years    int    `json:"years_experience" validate:"gte=0"`
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Email: "nope", Password: "123", Years: -1})

	assert.Equal(t, map[string]string{
		"email":            "Invalid email format",
		"password":         "Minimum length is 6",
		"years_experience": "Must be at least 0",
	}, errs)
	assert.Equal(t,
		"email: Invalid email format; password: Minimum length is 6; years_experience: Must be at least 0",
		FormatValidationErrors(errs))
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleRequest{Email: "a@b.co", Password: "secret"}))
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 10, ParseInt("abc", 10))

	assert.Nil(t, ParseOptionalBool(""))
	assert.Nil(t, ParseOptionalBool("maybe"))
	if b := ParseOptionalBool("true"); assert.NotNil(t, b) {
		assert.True(t, *b)
	}

	assert.Equal(t, "amina@example.com", NormalizeEmail("  Amina@Example.COM "))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, MaxOffset, CalculateOffset(math.MaxInt, 100))
	assert.Equal(t, MaxOffset, CalculateOffset(math.MaxInt32, 2))
}

func TestClaimsContext(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	ctx := SetClaimsContext(context.Background(), &auth.Claims{UserID: id, Role: "client"})

	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	role, ok := GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "client", role)
}
