package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/biography-backend/internal/services"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrProfileNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", services.ErrBlockNotFound), http.StatusNotFound},
		{services.ErrInvalidParent, http.StatusBadRequest},
		{&utils.ValidationError{Field: "username", Message: "x"}, http.StatusBadRequest},
		{services.ErrAlreadyFriend, http.StatusConflict},
		{services.ErrTreeCycle, http.StatusUnprocessableEntity},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{&services.AccessDeniedError{FriendCode: "ML-ABCDEF"}, http.StatusForbidden},
		{&services.SaveFailedError{Err: errors.New("down")}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), c.err.Error())
	}
}

func TestWriteErrorEnvelopes(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/profile", nil)

	rec := httptest.NewRecorder()
	writeError(rec, r, &services.AccessDeniedError{FriendCode: "ML-ABCDEF"})
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "ML-ABCDEF", body["friendCode"])

	rec = httptest.NewRecorder()
	writeError(rec, r, errors.New("secret connection string"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}
