package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/httputil"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	t.Run("WritesPayload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httputil.RespondWithJSON(rec, http.StatusCreated, map[string]int{"id": 1})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	})

	t.Run("UnmarshalablePayloadDegradesTo500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httputil.RespondWithJSON(rec, http.StatusOK, make(chan int))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	httputil.RespondWithError(rec, http.StatusNotFound, "group not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"group not found"}`, rec.Body.String())
}
