package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pay-ledger/internal/domain"
	"github.com/go-petr/pay-ledger/pkg/randompkg"
)

func setupTestServer(t *testing.T) (*MockService, *gin.Engine) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accountService := NewMockService(ctrl)
	accountHandler := NewHandler(accountService)

	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.POST("/accounts", accountHandler.Create)
	server.GET("/accounts/:id", accountHandler.Get)
	server.GET("/accounts", accountHandler.List)

	return accountService, server
}

func TestCreateAccountAPI(t *testing.T) {
	accountService, server := setupTestServer(t)

	owner := randompkg.Owner()

	accountService.EXPECT().
		Create(gomock.Any(), gomock.Eq(owner)).
		Times(1).
		Return(domain.Account{ID: 1, Owner: owner, Balance: "0"}, nil)

	body, err := json.Marshal(gin.H{"owner": owner})
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestCreateAccountAPIMissingOwner(t *testing.T) {
	accountService, server := setupTestServer(t)

	accountService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	body, err := json.Marshal(gin.H{})
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetAccountAPI(t *testing.T) {
	accountService, server := setupTestServer(t)

	accountService.EXPECT().
		Get(gomock.Any(), gomock.Eq(int32(1))).
		Times(1).
		Return(domain.Account{ID: 1, Balance: "1000"}, nil)

	request, err := http.NewRequest(http.MethodGet, "/accounts/1", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetAccountAPINotFound(t *testing.T) {
	accountService, server := setupTestServer(t)

	accountService.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	request, err := http.NewRequest(http.MethodGet, "/accounts/42", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListAccountsAPI(t *testing.T) {
	accountService, server := setupTestServer(t)

	owner := randompkg.Owner()

	accountService.EXPECT().
		List(gomock.Any(), gomock.Eq(owner), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
		Times(1).
		Return([]domain.Account{}, nil)

	request, err := http.NewRequest(http.MethodGet, "/accounts?owner="+owner+"&page_id=1&page_size=10", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}
