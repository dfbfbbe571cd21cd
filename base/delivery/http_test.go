package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/klvmarket/domain"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err error
		exp int
	}{
		{domain.Errorf(domain.KindInvalidInput, "bad"), http.StatusBadRequest},
		{domain.ErrNotConnected, http.StatusPreconditionFailed},
		{xerrors.Errorf("sign: %w", domain.ErrUserRejected), http.StatusConflict},
		{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
		{domain.ErrUpstreamUnavailable, http.StatusBadGateway},
		{domain.ErrMalformedResponse, http.StatusBadGateway},
		{domain.ErrNotFound, http.StatusNotFound},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.exp, StatusOf(tt.err, http.StatusInternalServerError), tt.err.Error())
	}
}

func TestMakeJsonResp(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, http.StatusOK, map[string]int{"total": 1}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"success","data":{"total":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, http.StatusInternalServerError, domain.Errorf(domain.KindInvalidInput, "price must be positive")))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Status JsonResponseStatus `json:"status"`
		Data   ErrorData          `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, JsonResponseStatusFail, resp.Status)
	require.Equal(t, domain.KindInvalidInput, resp.Data.Kind)
	require.Equal(t, "InvalidInput: price must be positive", resp.Data.Message)
}
