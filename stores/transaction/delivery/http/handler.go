package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/delivery"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/transaction"
)

type handler struct {
	transaction transaction.UseCase
}

func New(e *echo.Echo, transaction transaction.UseCase) {
	h := &handler{transaction}

	g := e.Group("/transactions")

	g.POST("/buy", h.buy)

	g.POST("/sell", h.sell)

	g.POST("/cancel", h.cancel)
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := transaction.BuyRequest{}
	if err := bindAndValidate(c, &req); err != nil {
		ctx.WithField("err", err).Warn("invalid buy request")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.transaction.Buy(ctx, req.Network, req.BuyInput)
	return respond(c, res, err)
}

func (h *handler) sell(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := transaction.SellRequest{}
	if err := bindAndValidate(c, &req); err != nil {
		ctx.WithField("err", err).Warn("invalid sell request")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.transaction.Sell(ctx, req.Network, req.SellInput)
	return respond(c, res, err)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := transaction.CancelRequest{}
	if err := bindAndValidate(c, &req); err != nil {
		ctx.WithField("err", err).Warn("invalid cancel request")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.transaction.Cancel(ctx, req.Network, req.CancelInput)
	return respond(c, res, err)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return domain.NewError(domain.KindInvalidInput, "invalid body", err)
	}
	return c.Validate(req)
}

// respond reports a failed operation with its result so the caller sees the
// operation id next to the error kind.
func respond(c echo.Context, res *transaction.Result, err error) error {
	if err != nil && res == nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, delivery.StatusOf(err, http.StatusInternalServerError), res)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
