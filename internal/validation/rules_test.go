package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAUPhone(t *testing.T) {
	cases := map[string]bool{
		"0412 345 678":    true,
		"+61 412 345 678": true,
		"(02) 9876 5432":  true,
		"0412-345-678":    true,
		"0112 345 678":    false,
		"041234567":       false,
		"+1 415 555 2671": false,
		"":                false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsAUPhone(in), in)
	}
}

func TestIsTFN(t *testing.T) {
	assert.True(t, IsTFN("123 456 782"))
	assert.True(t, IsTFN("123456782"))
	assert.False(t, IsTFN("123 456 789"))
	assert.False(t, IsTFN("12345"))
	assert.False(t, IsTFN("12345678a"))
}

func TestIsABN(t *testing.T) {
	assert.True(t, IsABN("51 824 753 556"))
	assert.False(t, IsABN("51 824 753 557"))
	assert.False(t, IsABN("5182475355"))
	assert.False(t, IsABN("01 824 753 556"))
}

func TestAgeOn(t *testing.T) {
	at := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 18, AgeOn(time.Date(2007, 6, 15, 0, 0, 0, 0, time.UTC), at))
	assert.Equal(t, 17, AgeOn(time.Date(2007, 6, 16, 0, 0, 0, 0, time.UTC), at))
}

type profileForm struct {
	FirstName string `json:"first_name" validate:"required,person_name"`
	Phone     string `json:"phone" validate:"omitempty,au_phone"`
	TFN       string `json:"tfn" validate:"omitempty,tfn"`
	DOB       string `json:"dob" validate:"required,min_age=18"`
}

func TestStruct(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	defer func() { now = orig }()

	ok := profileForm{FirstName: "Mary-Anne O'Neil", Phone: "0412 345 678", TFN: "123456782", DOB: "2000-01-01"}
	require.NoError(t, Struct(ok))

	bad := profileForm{FirstName: "R2D2", Phone: "12345", TFN: "123456789", DOB: "2010-01-01"}
	err := Struct(bad)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	byField := map[string]FieldError{}
	for _, f := range ve.Fields {
		byField[f.Field] = f
	}
	require.Len(t, byField, 4)
	assert.Equal(t, "validation_person_name", byField["first_name"].Code)
	assert.Equal(t, "validation_au_phone", byField["phone"].Code)
	assert.Equal(t, "validation_tfn", byField["tfn"].Code)
	assert.Equal(t, "You must be at least 18 years old", byField["dob"].Message)
}
