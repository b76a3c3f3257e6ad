package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type reviewForm struct {
	Rating int    `form:"rating" validate:"required,min=1,max=5"`
	Email  string `form:"author_email,omitempty" validate:"required,email"`
	Body   string `validate:"required"`
}

func TestFromBindError(t *testing.T) {
	in := reviewForm{Rating: 9, Email: "nope"}
	err := validator.New().Struct(&in)

	got := FromBindError(err, &in)
	assert.Equal(t, FieldErrors{
		"rating":       "Must be at most 5.",
		"author_email": "Please enter a valid email.",
		"body":         "This field is required.",
	}, got)
	assert.Equal(t, "Please enter a valid email.", got.First())
}

func TestFromBindError_NonValidation(t *testing.T) {
	got := FromBindError(errors.New("strconv.ParseInt: invalid syntax"), &reviewForm{})
	assert.Equal(t, "The submitted form is invalid.", got.First())
}
