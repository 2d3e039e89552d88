package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/store"
	"github.com/iov-one/pairswap/x/escrow"
	"github.com/iov-one/pairswap/x/sigs"
	"github.com/iov-one/pairswap/x/token"
	"github.com/iov-one/pairswap/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger hosts the escrow and token extensions. It owns the store, the
// block clock and executes transactions one at a time.
type Ledger struct {
	mu sync.Mutex

	chainID   string
	db        pairswap.CacheableKVStore
	blockTime time.Time
	logger    log.Logger

	handler pairswap.Handler
	decoder pairswap.TxDecoder

	tokens  token.Controller
	escrows escrow.Controller
}

// Option configures a Ledger.
type Option func(*ledgerConfig)

type ledgerConfig struct {
	logger    log.Logger
	metrics   prometheus.Registerer
	blockTime time.Time
}

// WithLogger sets the logger used for all transactions.
func WithLogger(l log.Logger) Option {
	return func(c *ledgerConfig) { c.logger = l }
}

// WithMetrics registers the transaction metrics with given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *ledgerConfig) { c.metrics = reg }
}

// WithBlockTime sets the initial block time. It defaults to the current
// time.
func WithBlockTime(t time.Time) Option {
	return func(c *ledgerConfig) { c.blockTime = t }
}

// NewLedger returns a ledger initialized from given genesis options.
func NewLedger(chainID string, genesis pairswap.Options, opts ...Option) (*Ledger, error) {
	if !pairswap.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	conf := ledgerConfig{
		logger:    pairswap.DefaultLogger,
		blockTime: time.Now(),
	}
	for _, fn := range opts {
		fn(&conf)
	}

	var metrics *utils.Metrics
	if conf.metrics != nil {
		m, err := utils.NewMetrics(conf.metrics)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	tokens := token.NewController()
	escrows := escrow.NewController(tokens)
	auth := sigs.Authenticate{}

	r := NewRouter()
	token.RegisterRoutes(r, auth, tokens)
	escrow.RegisterRoutes(r, auth, escrows)

	handler := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)

	l := &Ledger{
		chainID:   chainID,
		db:        store.MemStore(),
		blockTime: conf.blockTime,
		logger:    conf.logger,
		handler:   handler,
		decoder:   TxDecoder(r),
		tokens:    tokens,
		escrows:   escrows,
	}

	inits := pairswap.ChainInitializers(token.Initializer{}, escrow.Initializer{})
	err := utils.Atomic(l.db, func(db pairswap.KVStore) error {
		return inits.FromGenesis(genesis, db)
	})
	if err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	l.logger.Info("ledger initialized", "chain_id", chainID)
	return l, nil
}

// ChainID returns the chain the ledger accepts signatures for.
func (l *Ledger) ChainID() string {
	return l.chainID
}

// BlockTime returns the current time of the ledger clock.
func (l *Ledger) BlockTime() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blockTime
}

// SetBlockTime moves the ledger clock. The clock never goes back.
func (l *Ledger) SetBlockTime(t time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.Before(l.blockTime) {
		return errors.Wrapf(errors.ErrInput, "block time %s before %s", t, l.blockTime)
	}
	l.blockTime = t
	return nil
}

func (l *Ledger) context() pairswap.Context {
	ctx := pairswap.WithChainID(pairswap.WithLogger(context.Background(), l.logger), l.chainID)
	return pairswap.WithBlockTime(ctx, l.blockTime)
}

// CheckTx validates the transaction against the current state without
// changing it.
func (l *Ledger) CheckTx(raw []byte) (*pairswap.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.decoder(raw)
	if err != nil {
		return nil, err
	}
	scratch := l.db.CacheWrap()
	defer scratch.Discard()

	ctx := pairswap.WithLogInfo(l.context(), "call", "check_tx", "path", pairswap.GetPath(tx))
	return l.handler.Check(ctx, scratch, tx)
}

// DeliverTx executes the transaction. Signature sequences are consumed
// even if the message handler fails, its own writes are not kept then.
func (l *Ledger) DeliverTx(raw []byte) (*pairswap.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.decoder(raw)
	if err != nil {
		return nil, err
	}
	ctx := pairswap.WithLogInfo(l.context(), "call", "deliver_tx", "path", pairswap.GetPath(tx))
	return l.handler.Deliver(ctx, l.db, tx)
}

// Escrow returns the escrow between given parties and its address.
func (l *Ledger) Escrow(partyA, partyB pairswap.Address) (pairswap.Address, *escrow.Escrow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.escrows.Get(l.db, partyA, partyB)
}

// EscrowAt returns the escrow stored under given address together with
// the addresses of its vaults.
func (l *Ledger) EscrowAt(addr pairswap.Address) (*escrow.Escrow, pairswap.Address, pairswap.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, err := l.escrows.Load(l.db, addr)
	if err != nil {
		return nil, pairswap.Address{}, pairswap.Address{}, err
	}
	a, b, err := l.escrows.Vaults(l.db, addr)
	return e, a, b, err
}

// EscrowsOf returns addresses of all escrows given party takes part in.
func (l *Ledger) EscrowsOf(party pairswap.Address) ([]pairswap.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.escrows.ByParty(l.db, party)
}

// TokenAccount returns the token account stored under given address.
func (l *Ledger) TokenAccount(addr pairswap.Address) (*token.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tokens.Account(l.db, addr)
}

// TokenAccountsOf returns addresses of all token accounts owned by given
// address.
func (l *Ledger) TokenAccountsOf(owner pairswap.Address) ([]pairswap.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tokens.OwnedBy(l.db, owner)
}

// Nonce returns the sequence the next signature of given signer must use.
func (l *Ledger) Nonce(signer pairswap.Address) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sigs.NextNonce(l.db, signer)
}
