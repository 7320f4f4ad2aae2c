package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassesDomainErrorsThrough(t *testing.T) {
	err := NewConflict("email already registered", nil)
	mapped := ToDomainError(err)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorNormalizesUnknownErrors(t *testing.T) {
	mapped := ToDomainError(errors.New("connection reset by peer"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	// Internal detail never leaks into the message.
	assert.Equal(t, "internal server error", mapped.Message)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
}

func TestConstraintViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}
