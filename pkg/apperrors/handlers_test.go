package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleErrorWrapsPlainErrors(t *testing.T) {
	recorder, body := performError(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeInternalError, body.Error.Code)
	assert.Equal(t, "request", body.Error.Domain)
}

func TestHandleErrorKeepsAppErrorShape(t *testing.T) {
	recorder, body := performError(t, ErrPropertyNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeNotFound, body.Error.Code)
	assert.Equal(t, "property", body.Error.Domain)
}
