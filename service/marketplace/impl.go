package marketplace

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/order"
)

const defaultTimeout = 10 * time.Second

func NewClient(cfg *ClientCfg) Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

func (c *client) ListOrders(ctx bCtx.Ctx, apiUrl string, opts ...QueryOptionsFunc) (*order.Page, error) {
	opt, err := ParseQueryOptions(opts...)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if opt.Status != nil {
		params.Add("status", string(*opt.Status))
	}
	if opt.Collection != nil {
		params.Add("collection", string(*opt.Collection))
	}
	if opt.SortBy != nil {
		params.Add("sortBy", *opt.SortBy)
	}
	if opt.OrderBy != nil {
		params.Add("orderBy", *opt.OrderBy)
	}
	addPaging(params, opt)

	resp := &ordersResp{}
	if err := c.getJson(ctx, endpoint(apiUrl, "/marketplaces/orders", params), resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, domain.NewError(domain.KindUpstreamUnavailable, resp.Error, nil)
	}
	return &order.Page{
		Orders:     resp.Data.Orders,
		Pagination: resp.Pagination,
	}, nil
}

func (c *client) GetAsset(ctx bCtx.Ctx, apiUrl string, id asset.Id) (*asset.Metadata, error) {
	path := fmt.Sprintf("/assets/%s/%d", url.PathEscape(string(id.CollectionId)), id.Index)

	resp := &assetResp{}
	if err := c.getJson(ctx, endpoint(apiUrl, path, nil), resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, domain.NewError(domain.KindUpstreamUnavailable, resp.Error, nil)
	}
	if resp.Data.Asset == nil {
		return nil, domain.Errorf(domain.KindMalformedResponse, "asset %s missing from response", id)
	}
	return resp.Data.Asset, nil
}

func (c *client) ListTransactions(ctx bCtx.Ctx, apiUrl string, opts ...QueryOptionsFunc) (*TransactionPage, error) {
	opt, err := ParseQueryOptions(opts...)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if opt.ContractType != nil {
		params.Add("type", strconv.Itoa(int(*opt.ContractType)))
	}
	if opt.TxStatus != nil {
		params.Add("status", *opt.TxStatus)
	}
	addPaging(params, opt)

	resp := &transactionsResp{}
	if err := c.getJson(ctx, endpoint(apiUrl, "/transaction/list", params), resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, domain.NewError(domain.KindUpstreamUnavailable, resp.Error, nil)
	}
	return &TransactionPage{
		Transactions: resp.Data.Transactions,
		Pagination:   resp.Pagination,
	}, nil
}

func (c *client) getJson(ctx bCtx.Ctx, url string, container interface{}) error {
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return err
	}
	if err := json.Unmarshal(data, container); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("json.Unmarshal failed")
		return domain.NewError(domain.KindMalformedResponse, "undecodable body", err)
	}
	return nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewError(domain.KindUpstreamUnavailable, "rate limiter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, domain.NewError(domain.KindInvalidInput, "bad url", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewError(domain.KindUpstreamUnavailable, "", xerrors.Errorf("client.Do: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Warn("non 2xx response")
		return nil, domain.Errorf(domain.KindUpstreamUnavailable, "status %d from %s", resp.StatusCode, url)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewError(domain.KindUpstreamUnavailable, "failed to read body", err)
	}
	return body, nil
}

func addPaging(params url.Values, opt QueryOptions) {
	if opt.Page != nil {
		params.Add("page", strconv.Itoa(*opt.Page))
	}
	if opt.Limit != nil {
		params.Add("limit", strconv.Itoa(*opt.Limit))
	}
}

func endpoint(apiUrl, path string, params url.Values) string {
	u := strings.TrimRight(apiUrl, "/") + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
