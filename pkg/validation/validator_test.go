package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name     string `form:"name" binding:"required,personname"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
	Role     string `form:"role" binding:"required,role"`
}

func validForm() signupForm {
	return signupForm{
		Name:     "Jane Writer",
		Email:    "jane@example.com",
		Password: "password123",
		Role:     "Author",
	}
}

func TestAliasValidation(t *testing.T) {
	Init()

	assert.NoError(t, binding.Validator.ValidateStruct(validForm()))

	f := validForm()
	f.Name = "ab"
	assert.Error(t, binding.Validator.ValidateStruct(f), "name below 3 chars")

	f = validForm()
	f.Password = "short"
	assert.Error(t, binding.Validator.ValidateStruct(f), "password below 8 chars")

	f = validForm()
	f.Role = "Admin"
	assert.Error(t, binding.Validator.ValidateStruct(f), "role outside allow-list")

	f = validForm()
	f.Email = "not-an-email"
	assert.Error(t, binding.Validator.ValidateStruct(f))
}

func TestToDetails(t *testing.T) {
	Init()

	assert.Nil(t, ToDetails(nil))

	f := validForm()
	f.Name = ""
	f.Email = "bad"
	err := binding.Validator.ValidateStruct(f)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email address", details["email"])
}
