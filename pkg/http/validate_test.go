package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listRequest struct {
	Kind  string `query:"kind" validate:"required,oneof=rate spread"`
	Limit int    `query:"limit" default:"50" validate:"gte=1,lte=100"`
}

func bindQuery(t *testing.T, query string, req interface{}) []ValidationError {
	t.Helper()
	e := echo.New()
	r := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(r, httptest.NewRecorder())
	return ReadAndValidateRequest(c, req)
}

func TestReadAndValidateRequest_Defaults(t *testing.T) {
	req := &listRequest{}
	require.Nil(t, bindQuery(t, "kind=rate", req))
	assert.Equal(t, 50, req.Limit)
}

func TestReadAndValidateRequest_Errors(t *testing.T) {
	errs := bindQuery(t, "kind=gold&limit=500", &listRequest{})
	require.Len(t, errs, 2)
	assert.Equal(t, "ERR_ONEOF", errs[0].Code)
	assert.Equal(t, "Kind", errs[0].Field)
	assert.Equal(t, "ERR_LTE", errs[1].Code)
	assert.Equal(t, map[string]interface{}{"max": "100"}, errs[1].Params)
}

func TestReadAndValidateRequest_BindError(t *testing.T) {
	errs := bindQuery(t, "kind=rate&limit=ten", &listRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_BIND", errs[0].Code)
}
