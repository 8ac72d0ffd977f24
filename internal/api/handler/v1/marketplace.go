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

type MarketplaceService interface {
	CreateMoneyListing(ctx context.Context, userID, pokemonID uint, amountAsked int) (domain.MoneyTrade, error)
	CreateBarterListing(ctx context.Context, userID, pokemonID uint, preferences string) (domain.BarterTrade, error)
	CancelListing(ctx context.Context, userID, pokemonID uint) error
	Browse(ctx context.Context, filter domain.MarketplaceFilter) ([]domain.MarketplaceEntry, error)
	Featured(ctx context.Context, limit int) ([]domain.MarketplaceEntry, error)
	BuyPokemon(ctx context.Context, buyerID, pokemonID uint) error
}

type HistoryService interface {
	GetHistory(ctx context.Context, userID uint) ([]domain.TradeHistory, error)
}

type MarketplaceHandler struct {
	svc        MarketplaceService
	historySvc HistoryService
}

func NewMarketplaceHandler(svc MarketplaceService, historySvc HistoryService) *MarketplaceHandler {
	return &MarketplaceHandler{
		svc:        svc,
		historySvc: historySvc,
	}
}

// HandleCreateMoneyListing godoc
// @Summary      List a Pokémon for sale
// @Tags         marketplace
// @Produce      json
// @Param        pokemonID path      int true "Pokémon ID"
// @Param        request   body      request.CreateMoneyListingRequest true "request body"
// @Success      201      {object}   domain.MoneyTrade
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pokemon/{pokemonID}/listings/money [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleCreateMoneyListing(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	pokemonID, err := strconv.ParseUint(ctx.Param("pokemonID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid Pokémon ID")))

		return
	}

	var req request.CreateMoneyListingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateMoneyListing(ctx.Request.Context(), userID, uint(pokemonID), req.AmountAsked)
	if err != nil {
		h.renderListingErr(ctx, "HandleCreateMoneyListing", err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleCreateBarterListing godoc
// @Summary      List a Pokémon for barter
// @Tags         marketplace
// @Produce      json
// @Param        pokemonID path      int true "Pokémon ID"
// @Param        request   body      request.CreateBarterListingRequest true "request body"
// @Success      201      {object}   domain.BarterTrade
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pokemon/{pokemonID}/listings/barter [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleCreateBarterListing(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	pokemonID, err := strconv.ParseUint(ctx.Param("pokemonID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid Pokémon ID")))

		return
	}

	var req request.CreateBarterListingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateBarterListing(ctx.Request.Context(), userID, uint(pokemonID), req.TradePreferences)
	if err != nil {
		h.renderListingErr(ctx, "HandleCreateBarterListing", err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleCancelListing godoc
// @Summary      Cancel the caller's active listing on a Pokémon
// @Tags         marketplace
// @Produce      json
// @Param        pokemonID path      int true "Pokémon ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pokemon/{pokemonID}/listings [delete]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleCancelListing(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	pokemonID, err := strconv.ParseUint(ctx.Param("pokemonID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid Pokémon ID")))

		return
	}

	if err = h.svc.CancelListing(ctx.Request.Context(), userID, uint(pokemonID)); err != nil {
		h.renderListingErr(ctx, "HandleCancelListing", err)

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "listing canceled"})
}

// HandleBuyPokemon godoc
// @Summary      Buy a listed Pokémon
// @Tags         marketplace
// @Produce      json
// @Param        pokemonID path      int true "Pokémon ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pokemon/{pokemonID}/buy [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleBuyPokemon(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	pokemonID, err := strconv.ParseUint(ctx.Param("pokemonID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid Pokémon ID")))

		return
	}

	if err = h.svc.BuyPokemon(ctx.Request.Context(), userID, uint(pokemonID)); err != nil {
		switch {
		case errors.Is(err, service.ErrPokemonNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPokemonNotFound))
		case errors.Is(err, service.ErrSelfTrade):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSelfTrade))
		case errors.Is(err, service.ErrNotForSale):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotForSale))
		case errors.Is(err, service.ErrInsufficientFunds):
			response.RenderErr(ctx, response.NewErr(http.StatusPaymentRequired, service.ErrInsufficientFunds.Error()))
		default:
			err = fmt.Errorf("v1.HandleBuyPokemon -> h.svc.BuyPokemon -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "purchase complete"})
}

// HandleBrowse godoc
// @Summary      Browse the marketplace
// @Tags         marketplace
// @Produce      json
// @Param        type      query     string false "money, barter or all"
// @Param        rarity    query     int    false "rarity 1-5"
// @Param        min_price query     int    false "minimum asking price"
// @Param        max_price query     int    false "maximum asking price"
// @Param        name      query     string false "name search"
// @Success      200      {array}    domain.MarketplaceEntry
// @Failure      500      {object}   response.Err
// @Router       /marketplace [get]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleBrowse(ctx *gin.Context) {
	filter := domain.MarketplaceFilter{
		Name: ctx.Query("name"),
	}

	switch ctx.DefaultQuery("type", "all") {
	case "money":
		filter.Kind = domain.ListingKindMoney
	case "barter":
		filter.Kind = domain.ListingKindBarter
	}

	filter.Rarity, _ = strconv.Atoi(ctx.Query("rarity"))
	filter.MinPrice, _ = strconv.Atoi(ctx.Query("min_price"))
	filter.MaxPrice, _ = strconv.Atoi(ctx.Query("max_price"))

	entries, err := h.svc.Browse(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleBrowse -> h.svc.Browse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleFeatured godoc
// @Summary      Get a random sample of listed Pokémon
// @Tags         marketplace
// @Produce      json
// @Param        limit    query      int false "sample size (default 6)"
// @Success      200      {array}    domain.MarketplaceEntry
// @Failure      500      {object}   response.Err
// @Router       /marketplace/featured [get]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleFeatured(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "6"))
	if err != nil || limit <= 0 {
		limit = 6
	}

	entries, err := h.svc.Featured(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleFeatured -> h.svc.Featured -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetHistory godoc
// @Summary      Get the caller's trade history
// @Tags         marketplace
// @Produce      json
// @Success      200      {array}    domain.TradeHistory
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /marketplace/history [get]
// @Security     BearerAuth
func (h *MarketplaceHandler) HandleGetHistory(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	history, err := h.historySvc.GetHistory(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHistory -> h.historySvc.GetHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, history)
}

func (h *MarketplaceHandler) renderListingErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPokemonNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrPokemonNotFound))
	case errors.Is(err, service.ErrNotOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOwner))
	case errors.Is(err, service.ErrInvalidAmount):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAmount))
	case errors.Is(err, service.ErrAlreadyListed):
		response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyListed))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
