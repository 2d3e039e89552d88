package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/iov-one/pairswap/x/escrow"
	"github.com/iov-one/pairswap/x/sigs"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	chainID = "pairswap-test"
	now     = 1700000000
)

var (
	mintX = swaptest.SequenceAddress(1)
	mintY = swaptest.SequenceAddress(2)

	aliceX = swaptest.SequenceAddress(20)
	bobY   = swaptest.SequenceAddress(21)
	carolX = swaptest.SequenceAddress(22)
)

func genesis(alice, bob, carol pairswap.Address) pairswap.Options {
	raw := fmt.Sprintf(`{
		"conf": {"escrow": {"grace_period": 600}},
		"token": [
			{"address": %q, "mint": %q, "owner": %q, "amount": 1000},
			{"address": %q, "mint": %q, "owner": %q, "amount": 1000},
			{"address": %q, "mint": %q, "owner": %q, "amount": 1000}
		]
	}`,
		aliceX, mintX, alice,
		bobY, mintY, bob,
		carolX, mintX, carol,
	)
	var opts pairswap.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		panic(err)
	}
	return opts
}

// signed returns a serialized transaction with msg signed by key, using the
// next nonce of the signer.
func signed(l *Ledger, key *swaptest.Key, msg pairswap.Msg) []byte {
	tx, err := NewTx(msg)
	So(err, ShouldBeNil)
	seq, err := l.Nonce(key.Address())
	So(err, ShouldBeNil)
	So(tx.Sign(key.Private, l.ChainID(), seq), ShouldBeNil)
	raw, err := tx.Marshal()
	So(err, ShouldBeNil)
	return raw
}

func TestLedgerEscrow(t *testing.T) {
	Convey("Given a ledger with funded token accounts", t, func() {
		alice, bob, carol := swaptest.NewKey(t), swaptest.NewKey(t), swaptest.NewKey(t)
		reg := prometheus.NewRegistry()

		l, err := NewLedger(chainID, genesis(alice.Address(), bob.Address(), carol.Address()),
			WithBlockTime(time.Unix(now, 0)),
			WithMetrics(reg))
		So(err, ShouldBeNil)

		create := &escrow.CreateMsg{
			PartyB:   bob.Address().Bytes(),
			AssetA:   mintX.Bytes(),
			AssetB:   mintY.Bytes(),
			AmountA:  100,
			AmountB:  50,
			Deadline: now + 3600,
		}

		Convey("Creating an escrow too close to the deadline fails", func() {
			short := *create
			short.Deadline = now + 600
			_, err := l.DeliverTx(signed(l, alice, &short))
			So(escrow.ErrInvalidDeadline.Is(err), ShouldBeTrue)

			_, _, err = l.Escrow(alice.Address(), bob.Address())
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)

			Convey("but the signature sequence is consumed", func() {
				n, err := l.Nonce(alice.Address())
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("An unsigned transaction is rejected", func() {
			tx, err := NewTx(create)
			So(err, ShouldBeNil)
			raw, err := tx.Marshal()
			So(err, ShouldBeNil)
			_, err = l.DeliverTx(raw)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("When alice creates an escrow", func() {
			res, err := l.DeliverTx(signed(l, alice, create))
			So(err, ShouldBeNil)
			addr, err := pairswap.AddressFromBytes(res.Data)
			So(err, ShouldBeNil)

			e, vaultA, vaultB, err := l.EscrowAt(addr)
			So(err, ShouldBeNil)
			So(e.PartyA, ShouldResemble, alice.Address())
			So(e.PartyB, ShouldResemble, bob.Address())
			So(e.ADeposited, ShouldBeFalse)
			So(e.BDeposited, ShouldBeFalse)

			for _, v := range []pairswap.Address{vaultA, vaultB} {
				acc, err := l.TokenAccount(v)
				So(err, ShouldBeNil)
				So(acc.Amount, ShouldEqual, 0)
				So(acc.Owner, ShouldResemble, addr)
			}

			deposit := func(key *swaptest.Key, source pairswap.Address, amount uint64) (*pairswap.DeliverResult, error) {
				return l.DeliverTx(signed(l, key, &escrow.DepositMsg{
					Amount: amount,
					Escrow: addr.Bytes(),
					Source: source.Bytes(),
					VaultA: vaultA.Bytes(),
					VaultB: vaultB.Bytes(),
				}))
			}

			Convey("It cannot be created again", func() {
				_, err := l.DeliverTx(signed(l, alice, create))
				So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
			})

			Convey("Both parties can find it", func() {
				for _, p := range []pairswap.Address{alice.Address(), bob.Address()} {
					got, err := l.EscrowsOf(p)
					So(err, ShouldBeNil)
					So(got, ShouldResemble, []pairswap.Address{addr})
				}
			})

			Convey("A check does not change the state", func() {
				tx := signed(l, alice, &escrow.DepositMsg{
					Amount: 100, Escrow: addr.Bytes(), Source: aliceX.Bytes(),
					VaultA: vaultA.Bytes(), VaultB: vaultB.Bytes(),
				})
				_, err := l.CheckTx(tx)
				So(err, ShouldBeNil)

				acc, err := l.TokenAccount(vaultA)
				So(err, ShouldBeNil)
				So(acc.Amount, ShouldEqual, 0)
				n, err := l.Nonce(alice.Address())
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)

				_, err = l.DeliverTx(tx)
				So(err, ShouldBeNil)
			})

			Convey("Carol cannot deposit", func() {
				_, err := deposit(carol, carolX, 100)
				So(escrow.ErrUnknownCaller.Is(err), ShouldBeTrue)
			})

			Convey("Alice cannot deposit from the account of bob", func() {
				_, err := deposit(alice, bobY, 50)
				So(escrow.ErrAmountMismatch.Is(err), ShouldBeTrue)
				_, err = deposit(alice, bobY, 100)
				So(escrow.ErrWrongMint.Is(err), ShouldBeTrue)
			})

			Convey("A replayed deposit is rejected", func() {
				tx := signed(l, alice, &escrow.DepositMsg{
					Amount: 100, Escrow: addr.Bytes(), Source: aliceX.Bytes(),
					VaultA: vaultA.Bytes(), VaultB: vaultB.Bytes(),
				})
				_, err := l.DeliverTx(tx)
				So(err, ShouldBeNil)
				_, err = l.DeliverTx(tx)
				So(sigs.ErrInvalidSequence.Is(err), ShouldBeTrue)
			})

			Convey("After the deadline nobody can deposit", func() {
				So(l.SetBlockTime(time.Unix(now+3600, 0)), ShouldBeNil)
				_, err := deposit(alice, aliceX, 100)
				So(errors.ErrExpired.Is(err), ShouldBeTrue)
			})

			Convey("When both parties deposit", func() {
				res, err := deposit(bob, bobY, 50)
				So(err, ShouldBeNil)
				So(res.Log, ShouldEqual, "deposited by party B")
				res, err = deposit(alice, aliceX, 100)
				So(err, ShouldBeNil)
				So(res.Log, ShouldEqual, "deposited by party A")

				Convey("The escrow is funded", func() {
					e, _, _, err := l.EscrowAt(addr)
					So(err, ShouldBeNil)
					So(e.IsFunded(), ShouldBeTrue)

					balances := map[pairswap.Address]uint64{
						vaultA: 100,
						vaultB: 50,
						aliceX: 900,
						bobY:   950,
					}
					for a, want := range balances {
						acc, err := l.TokenAccount(a)
						So(err, ShouldBeNil)
						So(acc.Amount, ShouldEqual, want)
					}

					So(txCount(reg, "deliver", "escrow/deposit", "ok"), ShouldEqual, 2)
				})

				Convey("Nobody can deposit twice", func() {
					_, err := deposit(alice, aliceX, 100)
					So(escrow.ErrAlreadyDeposited.Is(err), ShouldBeTrue)

					acc, err := l.TokenAccount(vaultA)
					So(err, ShouldBeNil)
					So(acc.Amount, ShouldEqual, 100)
				})
			})
		})
	})
}

func TestLedgerClock(t *testing.T) {
	Convey("The ledger clock never goes back", t, func() {
		l, err := NewLedger(chainID, pairswap.Options{}, WithBlockTime(time.Unix(now, 0)))
		So(err, ShouldBeNil)

		So(l.SetBlockTime(time.Unix(now+1, 0)), ShouldBeNil)
		So(l.BlockTime().Unix(), ShouldEqual, now+1)
		So(errors.ErrInput.Is(l.SetBlockTime(time.Unix(now, 0))), ShouldBeTrue)
	})

	Convey("An invalid chain id is rejected", t, func() {
		_, err := NewLedger("x", pairswap.Options{})
		So(errors.ErrInput.Is(err), ShouldBeTrue)
	})
}

// txCount returns the value of the transaction counter with given labels.
func txCount(reg *prometheus.Registry, stage, path, result string) float64 {
	want := map[string]string{"stage": stage, "path": path, "result": result}
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if f.GetName() != "pairswap_tx_total" {
			continue
		}
	metrics:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}
