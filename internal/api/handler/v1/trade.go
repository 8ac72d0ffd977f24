package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/poketrade/marketplace-api/internal/api/handler/v1/request"
	"github.com/poketrade/marketplace-api/internal/api/handler/v1/response"
	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/service"
)

type TradeService interface {
	CreateRequest(ctx context.Context, senderID, senderPokemonID, receiverPokemonID uint) (domain.TradeRequest, error)
	GetRequest(ctx context.Context, id uint) (domain.TradeRequest, error)
	ListIncoming(ctx context.Context, receiverID uint) ([]domain.TradeRequest, error)
	ListIncomingForPokemon(ctx context.Context, pokemonID uint) ([]domain.TradeRequest, error)
	Respond(ctx context.Context, receiverID, requestID uint, action domain.TradeAction) error
}

type ReportService interface {
	FileReport(ctx context.Context, reporterID, listingID uint, reason string) (domain.TradeReport, error)
}

type TradeHandler struct {
	svc       TradeService
	reportSvc ReportService
}

func NewTradeHandler(svc TradeService, reportSvc ReportService) *TradeHandler {
	return &TradeHandler{
		svc:       svc,
		reportSvc: reportSvc,
	}
}

// HandleCreateTrade godoc
// @Summary      Propose a Pokémon swap
// @Tags         trades
// @Produce      json
// @Param        request  body       request.CreateTradeRequest true "request body"
// @Success      201      {object}   domain.TradeRequest
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trades [post]
// @Security     BearerAuth
func (h *TradeHandler) HandleCreateTrade(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	var req request.CreateTradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateRequest(ctx.Request.Context(), userID, req.SenderPokemonID, req.ReceiverPokemonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPokemonNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPokemonNotFound))
		case errors.Is(err, service.ErrSelfTrade):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSelfTrade))
		case errors.Is(err, service.ErrNotOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOwner))
		case errors.Is(err, service.ErrAlreadyPending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyPending))
		default:
			err = fmt.Errorf("v1.HandleCreateTrade -> h.svc.CreateRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetIncoming godoc
// @Summary      List the caller's incoming pending trade requests
// @Tags         trades
// @Produce      json
// @Success      200      {array}    domain.TradeRequest
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trades/incoming [get]
// @Security     BearerAuth
func (h *TradeHandler) HandleGetIncoming(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	requests, err := h.svc.ListIncoming(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetIncoming -> h.svc.ListIncoming -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, requests)
}

// HandleGetIncomingForPokemon godoc
// @Summary      List pending offers made against one Pokémon
// @Tags         trades
// @Produce      json
// @Param        pokemonID path      int true "Pokémon ID"
// @Success      200      {array}    domain.TradeRequest
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trades/incoming/{pokemonID} [get]
// @Security     BearerAuth
func (h *TradeHandler) HandleGetIncomingForPokemon(ctx *gin.Context) {
	pokemonID, err := strconv.ParseUint(ctx.Param("pokemonID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid Pokémon ID")))

		return
	}

	requests, err := h.svc.ListIncomingForPokemon(ctx.Request.Context(), uint(pokemonID))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetIncomingForPokemon -> h.svc.ListIncomingForPokemon -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, requests)
}

// HandleGetTrade godoc
// @Summary      Get one trade request
// @Tags         trades
// @Produce      json
// @Param        tradeID  path       int true "trade request ID"
// @Success      200      {object}   domain.TradeRequest
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trades/{tradeID} [get]
// @Security     BearerAuth
func (h *TradeHandler) HandleGetTrade(ctx *gin.Context) {
	tradeID, err := strconv.ParseUint(ctx.Param("tradeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid trade ID")))

		return
	}

	trade, err := h.svc.GetRequest(ctx.Request.Context(), uint(tradeID))
	if err != nil {
		if errors.Is(err, service.ErrTradeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTradeNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetTrade -> h.svc.GetRequest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, trade)
}

// HandleRespondTrade godoc
// @Summary      Accept or decline a trade request
// @Tags         trades
// @Produce      json
// @Param        tradeID  path       int true "trade request ID"
// @Param        request  body       request.RespondTradeRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trades/{tradeID}/respond [post]
// @Security     BearerAuth
func (h *TradeHandler) HandleRespondTrade(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	tradeID, err := strconv.ParseUint(ctx.Param("tradeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid trade ID")))

		return
	}

	var req request.RespondTradeRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err = h.svc.Respond(ctx.Request.Context(), userID, uint(tradeID), domain.TradeAction(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTradeNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTradeNotFound))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
		case errors.Is(err, service.ErrAlreadyResolved):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyResolved))
		case errors.Is(err, service.ErrNotOwner):
			response.RenderErr(ctx, response.ErrConflict(service.ErrNotOwner))
		case errors.Is(err, service.ErrInvalidAction):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAction))
		default:
			err = fmt.Errorf("v1.HandleRespondTrade -> h.svc.Respond -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	message := "trade declined"
	if req.Action == "accept" {
		message = "trade accepted"
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: message})
}

// HandleReportListing godoc
// @Summary      Report a listing
// @Description  Files a moderation report against the listing with the given ID
// @Tags         trades
// @Produce      json
// @Param        tradeID  path       int true "listing ID"
// @Param        request  body       request.FileReportRequest true "request body"
// @Success      201      {object}   domain.TradeReport
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trades/{tradeID}/report [post]
// @Security     BearerAuth
func (h *TradeHandler) HandleReportListing(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	listingID, err := strconv.ParseUint(ctx.Param("tradeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid listing ID")))

		return
	}

	var req request.FileReportRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	report, err := h.reportSvc.FileReport(ctx.Request.Context(), userID, uint(listingID), req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrReportTargetNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReportTargetNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleReportListing -> h.reportSvc.FileReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, report)
}
