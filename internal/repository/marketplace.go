package repository

import (
	"context"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository/dao"
)

var (
	ErrAlreadyListed   = dao.ErrAlreadyListed
	ErrInvalidAmount   = dao.ErrInvalidAmount
	ErrListingNotFound = dao.ErrListingNotFound
)

type ListingDAO interface {
	CreateMoneyTrade(ctx context.Context, ownerID, pokemonID uint, amountAsked int) (dao.MoneyTrade, error)
	CreateBarterTrade(ctx context.Context, ownerID, pokemonID uint, preferences string) (dao.BarterTrade, error)
	CancelActive(ctx context.Context, ownerID, pokemonID uint) (bool, error)
	FindActiveMoneyTradeByPokemonID(ctx context.Context, pokemonID uint) (dao.MoneyTrade, error)
	FindActiveBarterTradeByPokemonID(ctx context.Context, pokemonID uint) (dao.BarterTrade, error)
	FindMoneyTradeByID(ctx context.Context, id uint) (dao.MoneyTrade, error)
	FindBarterTradeByID(ctx context.Context, id uint) (dao.BarterTrade, error)
	FindActiveMoneyTrades(ctx context.Context) ([]dao.MoneyTrade, error)
	FindActiveBarterTrades(ctx context.Context) ([]dao.BarterTrade, error)
	FindFeaturedMoneyTrades(ctx context.Context, limit int) ([]dao.MoneyTrade, error)
	SetModerationStatus(ctx context.Context, kind string, id uint, status string, isFlagged bool, flagReason string) error
	CountActive(ctx context.Context) (money int64, barter int64, err error)
	CountFlagged(ctx context.Context) (int64, error)
	FindFlaggedMoneyTrades(ctx context.Context) ([]dao.MoneyTrade, error)
	FindFlaggedBarterTrades(ctx context.Context) ([]dao.BarterTrade, error)
}

type MarketplaceRepository struct {
	dao ListingDAO
}

func NewMarketplaceRepository(dao ListingDAO) *MarketplaceRepository {
	return &MarketplaceRepository{
		dao: dao,
	}
}

func (r *MarketplaceRepository) CreateMoneyTrade(ctx context.Context, ownerID, pokemonID uint, amountAsked int) (domain.MoneyTrade, error) {
	created, err := r.dao.CreateMoneyTrade(ctx, ownerID, pokemonID, amountAsked)
	if err != nil {
		return domain.MoneyTrade{}, fmt.Errorf("r.dao.CreateMoneyTrade -> %w", err)
	}

	return moneyTradeDaoToDomain(created), nil
}

func (r *MarketplaceRepository) CreateBarterTrade(ctx context.Context, ownerID, pokemonID uint, preferences string) (domain.BarterTrade, error) {
	created, err := r.dao.CreateBarterTrade(ctx, ownerID, pokemonID, preferences)
	if err != nil {
		return domain.BarterTrade{}, fmt.Errorf("r.dao.CreateBarterTrade -> %w", err)
	}

	return barterTradeDaoToDomain(created), nil
}

func (r *MarketplaceRepository) CancelActive(ctx context.Context, ownerID, pokemonID uint) (bool, error) {
	canceled, err := r.dao.CancelActive(ctx, ownerID, pokemonID)
	if err != nil {
		return false, fmt.Errorf("r.dao.CancelActive -> %w", err)
	}

	return canceled, nil
}

// FindActiveListings returns the live marketplace, sale and swap listings
// interleaved per kind, each with its Pokémon and owner hydrated.
func (r *MarketplaceRepository) FindActiveListings(ctx context.Context) ([]domain.MarketplaceEntry, error) {
	moneyTrades, err := r.dao.FindActiveMoneyTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveMoneyTrades -> %w", err)
	}

	barterTrades, err := r.dao.FindActiveBarterTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveBarterTrades -> %w", err)
	}

	entries := make([]domain.MarketplaceEntry, 0, len(moneyTrades)+len(barterTrades))
	for _, t := range moneyTrades {
		entries = append(entries, moneyTradeToEntry(t))
	}
	for _, t := range barterTrades {
		entries = append(entries, barterTradeToEntry(t))
	}

	return entries, nil
}

func (r *MarketplaceRepository) FindFeaturedListings(ctx context.Context, limit int) ([]domain.MarketplaceEntry, error) {
	moneyTrades, err := r.dao.FindFeaturedMoneyTrades(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFeaturedMoneyTrades -> %w", err)
	}

	entries := make([]domain.MarketplaceEntry, 0, len(moneyTrades))
	for _, t := range moneyTrades {
		entries = append(entries, moneyTradeToEntry(t))
	}

	return entries, nil
}

func (r *MarketplaceRepository) FindFlaggedListings(ctx context.Context) ([]domain.MarketplaceEntry, error) {
	moneyTrades, err := r.dao.FindFlaggedMoneyTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFlaggedMoneyTrades -> %w", err)
	}

	barterTrades, err := r.dao.FindFlaggedBarterTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFlaggedBarterTrades -> %w", err)
	}

	entries := make([]domain.MarketplaceEntry, 0, len(moneyTrades)+len(barterTrades))
	for _, t := range moneyTrades {
		entries = append(entries, moneyTradeToEntry(t))
	}
	for _, t := range barterTrades {
		entries = append(entries, barterTradeToEntry(t))
	}

	return entries, nil
}

func (r *MarketplaceRepository) FindMoneyTradeByID(ctx context.Context, id uint) (domain.MarketplaceEntry, error) {
	found, err := r.dao.FindMoneyTradeByID(ctx, id)
	if err != nil {
		return domain.MarketplaceEntry{}, fmt.Errorf("r.dao.FindMoneyTradeByID -> %w", err)
	}

	return moneyTradeToEntry(found), nil
}

func (r *MarketplaceRepository) FindBarterTradeByID(ctx context.Context, id uint) (domain.MarketplaceEntry, error) {
	found, err := r.dao.FindBarterTradeByID(ctx, id)
	if err != nil {
		return domain.MarketplaceEntry{}, fmt.Errorf("r.dao.FindBarterTradeByID -> %w", err)
	}

	return barterTradeToEntry(found), nil
}

func (r *MarketplaceRepository) SetModerationStatus(ctx context.Context, ref domain.ListingRef, status domain.ListingStatus, isFlagged bool, flagReason string) error {
	err := r.dao.SetModerationStatus(ctx, string(ref.Kind), ref.ID, string(status), isFlagged, flagReason)
	if err != nil {
		return fmt.Errorf("r.dao.SetModerationStatus -> %w", err)
	}

	return nil
}

func (r *MarketplaceRepository) CountActive(ctx context.Context) (money int64, barter int64, err error) {
	money, barter, err = r.dao.CountActive(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return money, barter, nil
}

func (r *MarketplaceRepository) CountFlagged(ctx context.Context) (int64, error) {
	count, err := r.dao.CountFlagged(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountFlagged -> %w", err)
	}

	return count, nil
}

func moneyTradeDaoToDomain(t dao.MoneyTrade) domain.MoneyTrade {
	return domain.MoneyTrade{
		ID:          t.ID,
		PokemonID:   t.PokemonID,
		AmountAsked: t.AmountAsked,
		Status:      domain.ListingStatus(t.Status),
		IsFlagged:   t.IsFlagged,
		FlagReason:  t.FlagReason,
		AdminNotes:  t.AdminNotes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func barterTradeDaoToDomain(t dao.BarterTrade) domain.BarterTrade {
	return domain.BarterTrade{
		ID:               t.ID,
		PokemonID:        t.PokemonID,
		TradePreferences: t.TradePreferences,
		Status:           domain.ListingStatus(t.Status),
		IsFlagged:        t.IsFlagged,
		FlagReason:       t.FlagReason,
		AdminNotes:       t.AdminNotes,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func moneyTradeToEntry(t dao.MoneyTrade) domain.MarketplaceEntry {
	converted := moneyTradeDaoToDomain(t)

	return domain.MarketplaceEntry{
		Pokemon:    pokemonDaoToDomain(t.Pokemon),
		MoneyTrade: &converted,
	}
}

func barterTradeToEntry(t dao.BarterTrade) domain.MarketplaceEntry {
	converted := barterTradeDaoToDomain(t)

	return domain.MarketplaceEntry{
		Pokemon:     pokemonDaoToDomain(t.Pokemon),
		BarterTrade: &converted,
	}
}
