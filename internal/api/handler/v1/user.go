package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/poketrade/marketplace-api/internal/api/handler/v1/response"
	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, userID uint) (domain.User, error)
	GetProfile(ctx context.Context, username string) (domain.User, []domain.Pokemon, error)
	GetCollection(ctx context.Context, userID uint) ([]domain.Pokemon, error)
	GetPokemon(ctx context.Context, viewerID, pokemonID uint) (domain.Pokemon, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user ID")))

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetProfile godoc
// @Summary      Get a user's public profile with their collection
// @Tags         users
// @Produce      json
// @Param        username  path      string true "username"
// @Success      200      {object}   response.ProfileResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/username/{username} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetProfile(ctx *gin.Context) {
	username := ctx.Param("username")

	user, collection, err := h.svc.GetProfile(ctx.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetProfile -> h.svc.GetProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ProfileResponse{
		User:       user.Simple(),
		Collection: collection,
	})
}

// HandleGetMyPokemon godoc
// @Summary      Get the caller's Pokémon collection
// @Tags         pokemon
// @Produce      json
// @Success      200      {array}    domain.Pokemon
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pokemon [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMyPokemon(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	collection, err := h.svc.GetCollection(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyPokemon -> h.svc.GetCollection -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, collection)
}

// HandleGetPokemon godoc
// @Summary      Get one Pokémon with its listings
// @Tags         pokemon
// @Produce      json
// @Param        pokemonID path      int true "Pokémon ID"
// @Success      200      {object}   domain.Pokemon
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /pokemon/{pokemonID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetPokemon(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	pokemonID, err := strconv.ParseUint(ctx.Param("pokemonID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid Pokémon ID")))

		return
	}

	pokemon, err := h.svc.GetPokemon(ctx.Request.Context(), userID, uint(pokemonID))
	if err != nil {
		if errors.Is(err, service.ErrPokemonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPokemonNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetPokemon -> h.svc.GetPokemon -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, pokemon)
}
