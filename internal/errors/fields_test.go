package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_EmptyIsNil(t *testing.T) {
	assert.NoError(t, FieldErrors{}.Err())
}

func TestFieldErrors_Err(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("title", "is required")
	fe.Add("title", "must be at least 1 characters")
	fe.Add("contactId", "Contact not found")

	err := fe.Err()
	require.Error(t, err)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Equal(t, 400, domainErr.HTTPStatus())
	assert.Equal(t, FieldErrors{
		"title":     {"is required", "must be at least 1 characters"},
		"contactId": {"Contact not found"},
	}, domainErr.Details)
}
