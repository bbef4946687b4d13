// Package scheduledelivery manages delivery layer of scheduled payments.
package scheduledelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pay-ledger/internal/domain"
	"github.com/go-petr/pay-ledger/pkg/errorspkg"
	"github.com/go-petr/pay-ledger/pkg/web"
)

// Service provides service layer interface needed by scheduled payment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package scheduledelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateScheduledPaymentParams) (domain.ScheduledPayment, error)
	Get(ctx context.Context, id int64) (domain.ScheduledPayment, error)
	List(ctx context.Context, fromAccountID, pageSize, pageID int32) ([]domain.ScheduledPayment, error)
	Trigger(ctx context.Context, id int64) (domain.TransferTxResult, error)
}

// Handler facilitates scheduled payment delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns scheduled payment handler.
func NewHandler(ss Service) *Handler {
	return &Handler{
		service: ss,
	}
}

type createRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
	PayDay        int32  `json:"pay_day" binding:"required,min=1,max=28"`
}

// Create handles http request to create a scheduled payment.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, bindErrorResponse(err))

		return
	}

	arg := domain.CreateScheduledPaymentParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		PayDay:        req.PayDay,
	}

	sp, err := h.service.Create(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrInvalidAmount,
			domain.ErrInvalidPayDay,
			domain.ErrSameAccountTransfer:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: sp})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a scheduled payment.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, bindErrorResponse(err))

		return
	}

	sp, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrScheduledPaymentNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: sp})
}

type listRequest struct {
	FromAccountID int32 `form:"from_account_id" binding:"required,min=1"`
	PageID        int32 `form:"page_id" binding:"required,min=1"`
	PageSize      int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list scheduled payments debiting an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, bindErrorResponse(err))

		return
	}

	payments, err := h.service.List(ctx, req.FromAccountID, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: payments})
}

// Trigger handles http request to replay a scheduled payment immediately.
func (h *Handler) Trigger(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, bindErrorResponse(err))

		return
	}

	result, err := h.service.Trigger(ctx, req.ID)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrInvalidAmount,
			domain.ErrSameAccountTransfer,
			domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case
			domain.ErrScheduledPaymentNotFound,
			domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result})
}

func bindErrorResponse(err error) web.Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return web.Response{Error: field.Field() + web.GetErrorMsg(field)}
	}

	return web.Error(err)
}
