package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/delivery"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
)

type handler struct {
	activity activity.UseCase
}

func New(e *echo.Echo, activity activity.UseCase) {
	h := &handler{activity}

	e.GET("/activities", h.list)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := activity.ListParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.NewError(domain.KindInvalidInput, "invalid params", err))
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.activity.List(ctx, p.Network, p.Page, p.Limit)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"params": p,
		}).Error("activity.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
