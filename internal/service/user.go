package service

import (
	"context"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

type UserPokemonRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Pokemon, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Pokemon, error)
}

type UserService struct {
	repo        UserRepository
	pokemonRepo UserPokemonRepository
}

func NewUserService(repo UserRepository, pokemonRepo UserPokemonRepository) *UserService {
	return &UserService{
		repo:        repo,
		pokemonRepo: pokemonRepo,
	}
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// GetProfile returns a user's public profile with their collection.
func (s *UserService) GetProfile(ctx context.Context, username string) (domain.User, []domain.Pokemon, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	collection, err := s.pokemonRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("s.pokemonRepo.FindByUserID -> %w", err)
	}

	return user, collection, nil
}

// GetCollection returns the caller's own Pokémon.
func (s *UserService) GetCollection(ctx context.Context, userID uint) ([]domain.Pokemon, error) {
	collection, err := s.pokemonRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.pokemonRepo.FindByUserID -> %w", err)
	}

	return collection, nil
}

// GetPokemon returns one Pokémon with IsOwner set for the viewer.
func (s *UserService) GetPokemon(ctx context.Context, viewerID, pokemonID uint) (domain.Pokemon, error) {
	pokemon, err := s.pokemonRepo.FindByID(ctx, pokemonID)
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("s.pokemonRepo.FindByID -> %w", err)
	}

	pokemon.IsOwner = pokemon.Owner.ID == viewerID

	return pokemon, nil
}
