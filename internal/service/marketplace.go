package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository"
)

var (
	ErrPokemonNotFound   = repository.ErrPokemonNotFound
	ErrNotOwner          = repository.ErrNotOwner
	ErrAlreadyListed     = repository.ErrAlreadyListed
	ErrInvalidAmount     = repository.ErrInvalidAmount
	ErrListingNotFound   = repository.ErrListingNotFound
	ErrSelfTrade         = repository.ErrSelfTrade
	ErrNotForSale        = repository.ErrNotForSale
	ErrInsufficientFunds = repository.ErrInsufficientFunds
)

type MarketplaceRepository interface {
	CreateMoneyTrade(ctx context.Context, ownerID, pokemonID uint, amountAsked int) (domain.MoneyTrade, error)
	CreateBarterTrade(ctx context.Context, ownerID, pokemonID uint, preferences string) (domain.BarterTrade, error)
	CancelActive(ctx context.Context, ownerID, pokemonID uint) (bool, error)
	FindActiveListings(ctx context.Context) ([]domain.MarketplaceEntry, error)
	FindFeaturedListings(ctx context.Context, limit int) ([]domain.MarketplaceEntry, error)
}

type PurchaseRepository interface {
	BuyPokemon(ctx context.Context, buyerID, pokemonID uint) error
}

type MarketplaceService struct {
	repo      MarketplaceRepository
	tradeRepo PurchaseRepository
}

func NewMarketplaceService(repo MarketplaceRepository, tradeRepo PurchaseRepository) *MarketplaceService {
	return &MarketplaceService{
		repo:      repo,
		tradeRepo: tradeRepo,
	}
}

func (s *MarketplaceService) CreateMoneyListing(ctx context.Context, userID, pokemonID uint, amountAsked int) (domain.MoneyTrade, error) {
	created, err := s.repo.CreateMoneyTrade(ctx, userID, pokemonID, amountAsked)
	if err != nil {
		return domain.MoneyTrade{}, fmt.Errorf("s.repo.CreateMoneyTrade -> %w", err)
	}

	return created, nil
}

func (s *MarketplaceService) CreateBarterListing(ctx context.Context, userID, pokemonID uint, preferences string) (domain.BarterTrade, error) {
	created, err := s.repo.CreateBarterTrade(ctx, userID, pokemonID, preferences)
	if err != nil {
		return domain.BarterTrade{}, fmt.Errorf("s.repo.CreateBarterTrade -> %w", err)
	}

	return created, nil
}

// CancelListing removes the caller's active listing on the Pokémon, of
// either kind. Nothing listed is not an error.
func (s *MarketplaceService) CancelListing(ctx context.Context, userID, pokemonID uint) error {
	if _, err := s.repo.CancelActive(ctx, userID, pokemonID); err != nil {
		return fmt.Errorf("s.repo.CancelActive -> %w", err)
	}

	return nil
}

// Browse returns the live marketplace narrowed by the filter.
func (s *MarketplaceService) Browse(ctx context.Context, filter domain.MarketplaceFilter) ([]domain.MarketplaceEntry, error) {
	entries, err := s.repo.FindActiveListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveListings -> %w", err)
	}

	filtered := make([]domain.MarketplaceEntry, 0, len(entries))
	for _, entry := range entries {
		if matchesFilter(entry, filter) {
			filtered = append(filtered, entry)
		}
	}

	return filtered, nil
}

func matchesFilter(entry domain.MarketplaceEntry, filter domain.MarketplaceFilter) bool {
	switch filter.Kind {
	case domain.ListingKindMoney:
		if entry.MoneyTrade == nil {
			return false
		}
	case domain.ListingKindBarter:
		if entry.BarterTrade == nil {
			return false
		}
	}

	if filter.Rarity > 0 && entry.Pokemon.Rarity != filter.Rarity {
		return false
	}

	// Price bounds only make sense against sale listings.
	if filter.MinPrice > 0 && (entry.MoneyTrade == nil || entry.MoneyTrade.AmountAsked < filter.MinPrice) {
		return false
	}
	if filter.MaxPrice > 0 && (entry.MoneyTrade == nil || entry.MoneyTrade.AmountAsked > filter.MaxPrice) {
		return false
	}

	if filter.Name != "" && !strings.Contains(strings.ToLower(entry.Pokemon.Name), strings.ToLower(filter.Name)) {
		return false
	}

	return true
}

func (s *MarketplaceService) Featured(ctx context.Context, limit int) ([]domain.MarketplaceEntry, error) {
	entries, err := s.repo.FindFeaturedListings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFeaturedListings -> %w", err)
	}

	return entries, nil
}

func (s *MarketplaceService) BuyPokemon(ctx context.Context, buyerID, pokemonID uint) error {
	if err := s.tradeRepo.BuyPokemon(ctx, buyerID, pokemonID); err != nil {
		return fmt.Errorf("s.tradeRepo.BuyPokemon -> %w", err)
	}

	return nil
}
