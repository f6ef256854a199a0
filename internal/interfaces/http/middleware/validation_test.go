package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hesab/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required"`
	Attempts int    `json:"attempts" binding:"omitempty,lte=5"`
}

func bindRouter() *gin.Engine {
	SetupValidator()
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		var body loginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(r, req)
}

func TestValidation_FieldErrorsUseJSONNames(t *testing.T) {
	w := postJSON(bindRouter(), `{"username":"ab"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code    string                 `json:"code"`
			Details []dto.ValidationDetail `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.ElementsMatch(t, []dto.ValidationDetail{
		{Field: "username", Message: "Must be at least 3 characters"},
		{Field: "password", Message: "This field is required"},
	}, resp.Error.Details)
}

func TestValidation_TypeMismatch(t *testing.T) {
	w := postJSON(bindRouter(), `{"username":"admin","password":"x","attempts":"many"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"attempts"`)
}

func TestValidation_MalformedJSON(t *testing.T) {
	w := postJSON(bindRouter(), `{"username":}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, errorCode(t, w))

	w = postJSON(bindRouter(), ``)
	assert.Equal(t, dto.ErrCodeInvalidJSON, errorCode(t, w))
}
