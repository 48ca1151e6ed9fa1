package engine

import (
	"errors"
	"testing"

	"github.com/ab2049/paytoy/internal/amount"
)

func mustAmount(t *testing.T, s string) amount.Amount {
	t.Helper()
	a, err := amount.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return a
}

func checkBalances(t *testing.T, a *account, available, held string, locked bool) {
	t.Helper()
	if got, want := a.available, mustAmount(t, available); got.Cmp(want) != 0 {
		t.Errorf("available = %s, want %s", got, want)
	}
	if got, want := a.held, mustAmount(t, held); got.Cmp(want) != 0 {
		t.Errorf("held = %s, want %s", got, want)
	}
	if a.locked != locked {
		t.Errorf("locked = %v, want %v", a.locked, locked)
	}
}

func TestAccount_DepositWithdraw(t *testing.T) {
	a := newAccount()

	// Withdrawal from an empty account is absorbed, no record created.
	applied, err := a.withdraw(1, mustAmount(t, "5.00"))
	if err != nil || applied {
		t.Fatalf("withdraw = (%v, %v), want absorbed", applied, err)
	}
	checkBalances(t, a, "0", "0", false)
	if _, ok := a.ledger[1]; ok {
		t.Error("absorbed withdrawal must not create a ledger record")
	}

	applied, err = a.deposit(4, mustAmount(t, "10.0"))
	if err != nil || !applied {
		t.Fatalf("deposit = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "10.0", "0", false)

	// Withdrawal above available funds leaves everything unchanged.
	applied, err = a.withdraw(5, mustAmount(t, "11.0"))
	if err != nil || applied {
		t.Fatalf("withdraw = (%v, %v), want absorbed", applied, err)
	}
	checkBalances(t, a, "10.0", "0", false)
	if _, ok := a.ledger[5]; ok {
		t.Error("absorbed withdrawal must not create a ledger record")
	}

	applied, err = a.withdraw(6, mustAmount(t, "3.0"))
	if err != nil || !applied {
		t.Fatalf("withdraw = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "7.0", "0", false)

	// Reusing a tx id within the same ledger is fatal, for both kinds.
	if _, err := a.withdraw(6, mustAmount(t, "3.0")); !errors.Is(err, ErrDuplicateTx) {
		t.Errorf("duplicate withdraw error = %v, want ErrDuplicateTx", err)
	}
	if _, err := a.deposit(6, mustAmount(t, "1.0")); !errors.Is(err, ErrDuplicateTx) {
		t.Errorf("duplicate deposit error = %v, want ErrDuplicateTx", err)
	}
	checkBalances(t, a, "7.0", "0", false)
}

func TestAccount_ExactSums(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "1.0001"))
	a.deposit(2, mustAmount(t, "2.0002"))
	if got := a.available.String(); got != "3.0003" {
		t.Errorf("available = %s, want 3.0003", got)
	}
}

func TestAccount_DisputeResolveRoundTrip(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "10.0000"))

	applied, err := a.dispute(1)
	if err != nil || !applied {
		t.Fatalf("dispute = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "0", "10", false)

	// A repeat dispute of the same record is absorbed.
	applied, err = a.dispute(1)
	if err != nil || applied {
		t.Fatalf("repeat dispute = (%v, %v), want absorbed", applied, err)
	}
	checkBalances(t, a, "0", "10", false)

	applied, err = a.resolve(1)
	if err != nil || !applied {
		t.Fatalf("resolve = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "10", "0", false)

	// The record is disputable again after a resolve.
	applied, err = a.dispute(1)
	if err != nil || !applied {
		t.Fatalf("re-dispute = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "0", "10", false)
}

func TestAccount_ResolveNotDisputed(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "10.0000"))

	if applied, err := a.resolve(1); err != nil || applied {
		t.Fatalf("resolve = (%v, %v), want absorbed", applied, err)
	}
	if applied, err := a.chargeback(1); err != nil || applied {
		t.Fatalf("chargeback = (%v, %v), want absorbed", applied, err)
	}
	checkBalances(t, a, "10", "0", false)
}

func TestAccount_UnknownTxReferences(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "10.0000"))

	for name, op := range map[string]func() (bool, error){
		"dispute":    func() (bool, error) { return a.dispute(99) },
		"resolve":    func() (bool, error) { return a.resolve(99) },
		"chargeback": func() (bool, error) { return a.chargeback(99) },
	} {
		if applied, err := op(); err != nil || applied {
			t.Errorf("%s of unknown tx = (%v, %v), want absorbed", name, applied, err)
		}
	}
	checkBalances(t, a, "10", "0", false)
}

func TestAccount_ChargebackTerminality(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "10.0000"))
	a.dispute(1)

	applied, err := a.chargeback(1)
	if err != nil || !applied {
		t.Fatalf("chargeback = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "0", "0", true)
	if _, ok := a.ledger[1]; ok {
		t.Error("charged-back record must be settled and removed")
	}

	// Every further mutation against the locked account is absorbed,
	// including a deposit reusing the settled tx id.
	ops := []func() (bool, error){
		func() (bool, error) { return a.deposit(2, mustAmount(t, "5.0")) },
		func() (bool, error) { return a.withdraw(3, mustAmount(t, "1.0")) },
		func() (bool, error) { return a.dispute(1) },
		func() (bool, error) { return a.resolve(1) },
		func() (bool, error) { return a.chargeback(1) },
		func() (bool, error) { return a.deposit(1, mustAmount(t, "5.0")) },
	}
	for i, op := range ops {
		if applied, err := op(); err != nil || applied {
			t.Errorf("op %d on locked account = (%v, %v), want absorbed", i, applied, err)
		}
	}
	checkBalances(t, a, "0", "0", true)
}

func TestAccount_DisputeDrivesAvailableNegative(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "10.0000"))
	a.withdraw(2, mustAmount(t, "8.0000"))

	// The deposited funds are already spent; disputing the deposit still
	// moves the full amount to held.
	applied, err := a.dispute(1)
	if err != nil || !applied {
		t.Fatalf("dispute = (%v, %v), want applied", applied, err)
	}
	if got := a.available.String(); got != "-8.0000" {
		t.Errorf("available = %s, want -8.0000", got)
	}
	if got := a.held.String(); got != "10.0000" {
		t.Errorf("held = %s, want 10.0000", got)
	}

	// total == available + held still holds exactly.
	snap, err := a.snapshot(1)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if got := snap.Total.String(); got != "2.0000" {
		t.Errorf("total = %s, want 2.0000", got)
	}
}

func TestAccount_WithdrawalDispute(t *testing.T) {
	a := newAccount()
	a.deposit(1, mustAmount(t, "10.0000"))
	a.withdraw(2, mustAmount(t, "4.0000"))

	// Withdrawals are disputable too; their amount moves to held.
	applied, err := a.dispute(2)
	if err != nil || !applied {
		t.Fatalf("dispute = (%v, %v), want applied", applied, err)
	}
	checkBalances(t, a, "2", "4", false)

	a.resolve(2)
	checkBalances(t, a, "6", "0", false)
}

func TestAccount_DepositOverflowIsFatal(t *testing.T) {
	a := newAccount()
	a.deposit(1, amount.FromTicks(1<<63-1))
	if _, err := a.deposit(2, amount.FromTicks(1)); !errors.Is(err, amount.ErrOverflow) {
		t.Errorf("deposit error = %v, want ErrOverflow", err)
	}
}
