package walletbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/transaction"
)

type BridgeCfg struct {
	HttpClient http.Client
	// Url of the bridge daemon, e.g. http://127.0.0.1:7777
	Url        string
	Timeout    time.Duration
}

// New returns nil when no url is configured, callers treat a nil bridge as
// not connected.
func New(cfg *BridgeCfg) transaction.Bridge {
	if cfg == nil || cfg.Url == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &bridge{
		client:  cfg.HttpClient,
		url:     strings.TrimRight(cfg.Url, "/"),
		timeout: timeout,
	}
}

type bridge struct {
	client  http.Client
	url     string
	timeout time.Duration
}

// errorResp is the part every bridge answer shares.
type errorResp struct {
	Error string `json:"error"`
}

type buildReq struct {
	Network   domain.Network             `json:"network"`
	Contracts []transaction.ContractCall `json:"contracts"`
}

type buildResp struct {
	Result transaction.Built `json:"result"`
	Error  string            `json:"error,omitempty"`
}

type signReq struct {
	Network domain.Network    `json:"network"`
	Tx      transaction.Built `json:"tx"`
}

type signResp struct {
	Result transaction.Signed `json:"result"`
	Error  string             `json:"error,omitempty"`
}

type broadcastReq struct {
	Network domain.Network       `json:"network"`
	Txs     []transaction.Signed `json:"txs"`
}

func (b *bridge) BuildTransaction(ctx bCtx.Ctx, network domain.Network, calls []transaction.ContractCall) (transaction.Built, error) {
	resp := &buildResp{}
	if err := b.post(ctx, "/build", buildReq{Network: network, Contracts: calls}, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, xerrors.New(resp.Error)
	}
	if len(resp.Result) == 0 {
		return nil, domain.Errorf(domain.KindMalformedResponse, "empty build result")
	}
	return resp.Result, nil
}

func (b *bridge) SignTransaction(ctx bCtx.Ctx, network domain.Network, tx transaction.Built) (transaction.Signed, error) {
	resp := &signResp{}
	if err := b.post(ctx, "/sign", signReq{Network: network, Tx: tx}, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, xerrors.New(resp.Error)
	}
	if len(resp.Result) == 0 {
		return nil, domain.Errorf(domain.KindMalformedResponse, "empty sign result")
	}
	return resp.Result, nil
}

// BroadcastTransactions hands back the daemon's answer as is, an error field in it
// is for the caller to interpret.
func (b *bridge) BroadcastTransactions(ctx bCtx.Ctx, network domain.Network, txs []transaction.Signed) (*transaction.BroadcastResponse, error) {
	resp := &transaction.BroadcastResponse{}
	if err := b.post(ctx, "/broadcast", broadcastReq{Network: network, Txs: txs}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// post sends body as json and decodes the answer. Transport failures are
// UpstreamUnavailable, undecodable answers MalformedResponse. A non 2xx answer
// still gets decoded so the daemon's error message reaches the caller, without a
// message it is UpstreamUnavailable.
func (b *bridge) post(ctx bCtx.Ctx, path string, body, container interface{}) error {
	ctx, cancel := bCtx.WithTimeout(ctx, b.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	url := b.url + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("NewRequestWithContext failed")
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{"url": url, "err": err}).Warn("client.Do failed")
		return domain.NewError(domain.KindUpstreamUnavailable, "wallet bridge unreachable", err)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return domain.NewError(domain.KindUpstreamUnavailable, "failed to read bridge response", err)
	}
	if err := json.Unmarshal(data, container); err != nil {
		if resp.StatusCode >= 300 {
			return domain.Errorf(domain.KindUpstreamUnavailable, "bridge status %d", resp.StatusCode)
		}
		ctx.WithFields(log.Fields{"url": url, "err": err}).Error("json.Unmarshal failed")
		return domain.NewError(domain.KindMalformedResponse, fmt.Sprintf("undecodable %s response", path), err)
	}
	if resp.StatusCode >= 300 {
		failure := errorResp{}
		if err := json.Unmarshal(data, &failure); err != nil || failure.Error == "" {
			ctx.WithFields(log.Fields{"url": url, "status": resp.StatusCode}).Warn("bridge failed without an error message")
			return domain.Errorf(domain.KindUpstreamUnavailable, "bridge status %d", resp.StatusCode)
		}
	}
	return nil
}
