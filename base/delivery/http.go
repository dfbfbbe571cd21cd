package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/klvmarket/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// ErrorData is the payload of a failed response.
type ErrorData struct {
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message"`
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindInvalidInput:        http.StatusBadRequest,
	domain.KindNotConnected:        http.StatusPreconditionFailed,
	domain.KindUserRejected:        http.StatusConflict,
	domain.KindInsufficientFunds:   http.StatusPaymentRequired,
	domain.KindUpstreamUnavailable: http.StatusBadGateway,
	domain.KindMalformedResponse:   http.StatusBadGateway,
}

// StatusOf maps an error to the http status it is reported with. Errors without a
// known kind keep fallback.
func StatusOf(err error, fallback int) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	if s, ok := kindStatus[domain.KindOf(err)]; ok {
		return s
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = ErrorData{Kind: domain.KindOf(err), Message: err.Error()}
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
