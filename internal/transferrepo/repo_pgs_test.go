package transferrepo

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pay-ledger/internal/accountrepo"
	"github.com/go-petr/pay-ledger/internal/domain"
	"github.com/go-petr/pay-ledger/pkg/configpkg"
	"github.com/go-petr/pay-ledger/pkg/dbpkg"
	"github.com/go-petr/pay-ledger/pkg/randompkg"
)

var (
	testTransferRepo *RepoPGS
	testAccountRepo  *accountrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testAccountRepo = accountrepo.NewRepoPGS(testDB)
	testTransferRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createTestAccount(t *testing.T, balance string) domain.Account {
	t.Helper()

	account, err := testAccountRepo.Create(context.Background(), randompkg.Owner(), balance)
	require.NoError(t, err)
	require.NotEmpty(t, account)
	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)

	return account
}

func requireBalanceEqual(t *testing.T, want, got string) {
	t.Helper()

	wantDecimal := decimal.RequireFromString(want)
	gotDecimal := decimal.RequireFromString(got)

	require.True(t, wantDecimal.Equal(gotDecimal), "want balance %s, got %s", want, got)
}

func TestTransfer(t *testing.T) {
	account1 := createTestAccount(t, "1000")
	account2 := createTestAccount(t, "1000")

	arg := domain.CreateTransferParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Amount:        "100",
	}

	result, err := testTransferRepo.Transfer(context.Background(), arg)
	require.NoError(t, err)

	requireBalanceEqual(t, "900", result.FromAccount.Balance)
	requireBalanceEqual(t, "1100", result.ToAccount.Balance)

	// Conservation: the sum of the two balances is unchanged.
	sum := decimal.RequireFromString(result.FromAccount.Balance).
		Add(decimal.RequireFromString(result.ToAccount.Balance))
	require.True(t, sum.Equal(decimal.NewFromInt(2000)))

	require.NotZero(t, result.Transfer.ID)
	require.NotZero(t, result.Transfer.CreatedAt)
	require.Equal(t, account1.ID, result.Transfer.FromAccountID)
	require.Equal(t, account2.ID, result.Transfer.ToAccountID)
	requireBalanceEqual(t, "100", result.Transfer.Amount)

	persisted, err := testTransferRepo.Get(context.Background(), result.Transfer.ID)
	require.NoError(t, err)
	require.Equal(t, result.Transfer, persisted)
}

func TestTransferInsufficientBalance(t *testing.T) {
	account1 := createTestAccount(t, "1000")
	account2 := createTestAccount(t, "1000")

	arg := domain.CreateTransferParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Amount:        "10000",
	}

	_, err := testTransferRepo.Transfer(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// No partial state: balances unchanged, no transfer recorded.
	account1After, err := testAccountRepo.Get(context.Background(), account1.ID)
	require.NoError(t, err)
	requireBalanceEqual(t, "1000", account1After.Balance)

	account2After, err := testAccountRepo.Get(context.Background(), account2.ID)
	require.NoError(t, err)
	requireBalanceEqual(t, "1000", account2After.Balance)

	transfers, err := testTransferRepo.List(context.Background(), domain.ListTransfersParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Limit:         10,
	})
	require.NoError(t, err)
	require.Empty(t, transfers)
}

func TestTransferTwiceDoublesTheMovement(t *testing.T) {
	account1 := createTestAccount(t, "1000")
	account2 := createTestAccount(t, "1000")

	arg := domain.CreateTransferParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Amount:        "100",
	}

	first, err := testTransferRepo.Transfer(context.Background(), arg)
	require.NoError(t, err)

	second, err := testTransferRepo.Transfer(context.Background(), arg)
	require.NoError(t, err)

	require.NotEqual(t, first.Transfer.ID, second.Transfer.ID)
	requireBalanceEqual(t, "800", second.FromAccount.Balance)
	requireBalanceEqual(t, "1200", second.ToAccount.Balance)

	transfers, err := testTransferRepo.List(context.Background(), domain.ListTransfersParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Limit:         10,
	})
	require.NoError(t, err)
	require.Len(t, transfers, 2)
}

func TestTransferConcurrent(t *testing.T) {
	account1 := createTestAccount(t, "1000")
	account2 := createTestAccount(t, "1000")

	arg := domain.CreateTransferParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Amount:        "100",
	}

	const n = 5

	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		go func() {
			_, err := testTransferRepo.Transfer(context.Background(), arg)
			errs <- err
		}()
	}

	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	account1After, err := testAccountRepo.Get(context.Background(), account1.ID)
	require.NoError(t, err)
	requireBalanceEqual(t, "500", account1After.Balance)

	account2After, err := testAccountRepo.Get(context.Background(), account2.ID)
	require.NoError(t, err)
	requireBalanceEqual(t, "1500", account2After.Balance)
}

func TestCreate(t *testing.T) {
	account1 := createTestAccount(t, "1000")
	account2 := createTestAccount(t, "1000")

	arg := domain.CreateTransferParams{
		FromAccountID: account1.ID,
		ToAccountID:   account2.ID,
		Amount:        randompkg.MoneyAmountBetween(10, 100),
	}

	transfer, err := testTransferRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotZero(t, transfer.ID)
	require.NotZero(t, transfer.CreatedAt)
	require.Equal(t, arg.FromAccountID, transfer.FromAccountID)
	require.Equal(t, arg.ToAccountID, transfer.ToAccountID)
	requireBalanceEqual(t, arg.Amount, transfer.Amount)
}

func TestGetNotFound(t *testing.T) {
	_, err := testTransferRepo.Get(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrTransferNotFound)
}
