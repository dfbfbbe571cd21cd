package usecase

import (
	"errors"

	"github.com/google/uuid"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/transaction"
)

// StateObserver is told about every transition of every operation.
type StateObserver func(c bCtx.Ctx, change transaction.StateChange)

// operation is one buy, sell or cancel attempt. It only ever moves forward.
type operation struct {
	id       string
	op       transaction.Op
	network  domain.Network
	state    transaction.State
	observer StateObserver
}

func newOperation(op transaction.Op, network domain.Network, observer StateObserver) (*operation, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &operation{
		id:       id.String(),
		op:       op,
		network:  network,
		state:    transaction.StateIdle,
		observer: observer,
	}, nil
}

func (o *operation) transition(c bCtx.Ctx, to transaction.State) {
	if !o.state.CanTransitionTo(to) {
		c.WithFields(log.Fields{
			"from": o.state,
			"to":   to,
		}).Panic("invalid operation transition")
	}

	change := transaction.StateChange{OperationId: o.id, Op: o.op, From: o.state, To: to}
	o.state = to
	c.WithFields(log.Fields{
		"from": change.From,
		"to":   change.To,
	}).Info("operation state changed")
	if o.observer != nil {
		o.observer(c, change)
	}
}

func (o *operation) succeed(c bCtx.Ctx, hash domain.TxHash, explorerUrl string) *transaction.Result {
	o.transition(c, transaction.StateSucceeded)
	return &transaction.Result{
		OperationId: o.id,
		Op:          o.op,
		State:       o.state,
		TxHash:      hash,
		ExplorerUrl: explorerUrl,
	}
}

func (o *operation) fail(c bCtx.Ctx, err error) *transaction.Result {
	o.transition(c, transaction.StateFailed)
	return &transaction.Result{
		OperationId: o.id,
		Op:          o.op,
		State:       o.state,
		ErrorKind:   domain.KindOf(err),
		Message:     messageOf(err),
	}
}

// messageOf prefers the innermost text, which for wallet errors is what the wallet said.
func messageOf(err error) string {
	var e *domain.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return err.Error()
}
