package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,max=5"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestDecodeJSON(t *testing.T) {
	var req sampleRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Mia","count":2}`))
	require.NoError(t, DecodeJSON(r, &req))
	assert.Equal(t, sampleRequest{Name: "Mia", Count: 2}, req)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Mia","unknown":1}`))
	assert.Error(t, DecodeJSON(r, &req))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Mia"}{"name":"Leo"}`))
	assert.Error(t, DecodeJSON(r, &req))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(r, &req))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(sampleRequest{Name: "Mia"}))

	err := Validate(sampleRequest{Name: "", Count: -1})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"name": "required", "count": "gte=0"}, ValidationDetails(err))

	err = Validate(sampleRequest{Name: "Maximilian"})
	assert.Equal(t, map[string]string{"name": "max=5"}, ValidationDetails(err))

	assert.Nil(t, ValidationDetails(assert.AnError))
}

func TestRespondHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	RespondNotFound(w, "бронирование не найдено")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "бронирование не найдено", body.Error)

	w = httptest.NewRecorder()
	RespondInternalError(w)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
