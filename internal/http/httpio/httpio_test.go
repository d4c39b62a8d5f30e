package httpio_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/http/httpio"
)

type userRequest struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
	Qty   *int   `json:"qty" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string]string
		wantErr    bool
	}{
		{name: "Valid", body: `{"name":"Budi","email":"budi@kasir.id","qty":0}`},
		{name: "Malformed", body: `{"name":`, wantErr: true},
		{name: "UnknownField", body: `{"name":"Budi","email":"budi@kasir.id","qty":1,"x":1}`, wantErr: true},
		{
			name:       "Invalid",
			body:       `{"name":"Bartholomew Santoso","email":"nope"}`,
			wantErr:    true,
			wantFields: map[string]string{"name": "must be at most 10", "email": "must be a valid email", "qty": "is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req userRequest

			err := httpio.DecodeJSON(r, &req)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			var verr *httpio.ValidationError
			if tt.wantFields == nil {
				assert.False(t, errors.As(err, &verr))
				return
			}

			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields)
			assert.Equal(t, "validation failed: email must be a valid email; name must be at most 10; qty is required", verr.Error())
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpio.JSON(rec, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
