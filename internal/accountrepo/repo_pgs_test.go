package accountrepo

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pay-ledger/internal/domain"
	"github.com/go-petr/pay-ledger/pkg/configpkg"
	"github.com/go-petr/pay-ledger/pkg/dbpkg"
	"github.com/go-petr/pay-ledger/pkg/randompkg"
)

var (
	testConfig      configpkg.Config
	testAccountRepo *RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testConfig = config

	testDB, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testAccountRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createTestAccount(t *testing.T, balance string) domain.Account {
	t.Helper()

	account, err := testAccountRepo.Create(context.Background(), randompkg.Owner(), balance)
	require.NoError(t, err)
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

func TestCreate(t *testing.T) {
	balance := randompkg.MoneyAmountBetween(1_000, 10_000)
	account := createTestAccount(t, balance)

	requireBalanceEqual(t, balance, account.Balance)
}

func TestGet(t *testing.T) {
	account := createTestAccount(t, "1000")

	got, err := testAccountRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)
}

func TestGetNotFound(t *testing.T) {
	_, err := testAccountRepo.Get(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddBalance(t *testing.T) {
	account := createTestAccount(t, "1000")

	got, err := testAccountRepo.AddBalance(context.Background(), "250.50", account.ID)
	require.NoError(t, err)
	requireBalanceEqual(t, "1250.50", got.Balance)

	got, err = testAccountRepo.AddBalance(context.Background(), "-250.50", account.ID)
	require.NoError(t, err)
	requireBalanceEqual(t, "1000", got.Balance)
}

func TestAddBalanceBelowZero(t *testing.T) {
	account := createTestAccount(t, "100")

	// The schema balance check backs up the service-level sufficiency check.
	_, err := testAccountRepo.AddBalance(context.Background(), "-200", account.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestList(t *testing.T) {
	account1 := createTestAccount(t, "1000")

	accounts, err := testAccountRepo.List(context.Background(), account1.Owner, 10, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, account1, accounts[0])
}

func TestRepoInsideTx(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	txRepo := NewRepoPGS(tx)

	account, err := txRepo.Create(context.Background(), randompkg.Owner(), "1000")
	require.NoError(t, err)

	got, err := txRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)

	// Other connections never see the uncommitted account and SetupTX
	// rolls the transaction back when the test ends.
	_, err = testAccountRepo.Get(context.Background(), account.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDelete(t *testing.T) {
	account := createTestAccount(t, "1000")

	require.NoError(t, testAccountRepo.Delete(context.Background(), account.ID))

	_, err := testAccountRepo.Get(context.Background(), account.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
