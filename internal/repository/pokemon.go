package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository/dao"
)

var (
	ErrPokemonNotFound = dao.ErrPokemonNotFound
	ErrNotOwner        = dao.ErrNotOwner
)

type PokemonDAO interface {
	Insert(ctx context.Context, pokemon dao.Pokemon) (dao.Pokemon, error)
	FindByID(ctx context.Context, id uint) (dao.Pokemon, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Pokemon, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Pokemon, error)
}

type PokemonRepository struct {
	dao        PokemonDAO
	listingDAO ListingDAO
}

func NewPokemonRepository(dao PokemonDAO, listingDAO ListingDAO) *PokemonRepository {
	return &PokemonRepository{
		dao:        dao,
		listingDAO: listingDAO,
	}
}

func (r *PokemonRepository) Create(ctx context.Context, ownerID uint, pokemon domain.Pokemon) (domain.Pokemon, error) {
	created, err := r.dao.Insert(ctx, dao.Pokemon{
		UserID:    ownerID,
		PokeapiID: pokemon.PokeapiID,
		Name:      pokemon.Name,
		Rarity:    pokemon.Rarity,
		ImageURL:  pokemon.ImageURL,
		Types:     pokemon.Types,
	})
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// FindByID returns the Pokémon with its active listing, if any, attached.
func (r *PokemonRepository) FindByID(ctx context.Context, id uint) (domain.Pokemon, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	pokemon := r.daoToDomain(found)
	if err := r.attachListings(ctx, &pokemon); err != nil {
		return domain.Pokemon{}, err
	}

	return pokemon, nil
}

// FindByUserID returns the user's collection, each Pokémon with its active
// listing attached.
func (r *PokemonRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Pokemon, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	pokemons := make([]domain.Pokemon, 0, len(found))
	for _, p := range found {
		pokemon := r.daoToDomain(p)
		if err := r.attachListings(ctx, &pokemon); err != nil {
			return nil, err
		}

		pokemons = append(pokemons, pokemon)
	}

	return pokemons, nil
}

func (r *PokemonRepository) attachListings(ctx context.Context, pokemon *domain.Pokemon) error {
	moneyTrade, err := r.listingDAO.FindActiveMoneyTradeByPokemonID(ctx, pokemon.ID)
	switch {
	case err == nil:
		converted := moneyTradeDaoToDomain(moneyTrade)
		pokemon.MoneyTrade = &converted
	case !errors.Is(err, dao.ErrListingNotFound):
		return fmt.Errorf("r.listingDAO.FindActiveMoneyTradeByPokemonID -> %w", err)
	}

	barterTrade, err := r.listingDAO.FindActiveBarterTradeByPokemonID(ctx, pokemon.ID)
	switch {
	case err == nil:
		converted := barterTradeDaoToDomain(barterTrade)
		pokemon.BarterTrade = &converted
	case !errors.Is(err, dao.ErrListingNotFound):
		return fmt.Errorf("r.listingDAO.FindActiveBarterTradeByPokemonID -> %w", err)
	}

	return nil
}

func (r *PokemonRepository) daoToDomain(p dao.Pokemon) domain.Pokemon {
	return pokemonDaoToDomain(p)
}

func pokemonDaoToDomain(p dao.Pokemon) domain.Pokemon {
	return domain.Pokemon{
		ID:        p.ID,
		PokeapiID: p.PokeapiID,
		Name:      p.Name,
		Rarity:    p.Rarity,
		ImageURL:  p.ImageURL,
		Types:     p.Types,
		Owner: domain.SimpleUser{
			ID:       p.User.ID,
			Username: p.User.Username,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func pokemonDaoToRef(p dao.Pokemon) domain.PokemonRef {
	return domain.PokemonRef{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
	}
}
