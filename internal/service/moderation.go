package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository"
)

var (
	ErrReportNotFound       = repository.ErrReportNotFound
	ErrReportTargetNotFound = repository.ErrReportTargetNotFound
	ErrInvalidStatus        = errors.New("invalid report status")
)

type ModerationListingRepository interface {
	FindMoneyTradeByID(ctx context.Context, id uint) (domain.MarketplaceEntry, error)
	FindBarterTradeByID(ctx context.Context, id uint) (domain.MarketplaceEntry, error)
	FindFlaggedListings(ctx context.Context) ([]domain.MarketplaceEntry, error)
	SetModerationStatus(ctx context.Context, ref domain.ListingRef, status domain.ListingStatus, isFlagged bool, flagReason string) error
	CountActive(ctx context.Context) (money int64, barter int64, err error)
	CountFlagged(ctx context.Context) (int64, error)
}

type ReportRepository interface {
	Create(ctx context.Context, reporterID uint, listing domain.ListingRef, reason string) (domain.TradeReport, error)
	FindAll(ctx context.Context) ([]domain.TradeReport, error)
	UpdateStatus(ctx context.Context, id uint, status domain.ReportStatus, adminNotes string, resolverID uint) (domain.TradeReport, error)
	CountOpen(ctx context.Context) (int64, error)
}

type ModerationUserRepository interface {
	CountUsers(ctx context.Context) (int64, error)
}

type ModerationTradeRepository interface {
	FindRecentHistory(ctx context.Context, limit int) ([]domain.TradeHistory, error)
	CountHistory(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type ModerationService struct {
	listingRepo ModerationListingRepository
	reportRepo  ReportRepository
	userRepo    ModerationUserRepository
	tradeRepo   ModerationTradeRepository
}

func NewModerationService(
	listingRepo ModerationListingRepository,
	reportRepo ReportRepository,
	userRepo ModerationUserRepository,
	tradeRepo ModerationTradeRepository,
) *ModerationService {
	return &ModerationService{
		listingRepo: listingRepo,
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		tradeRepo:   tradeRepo,
	}
}

func (s *ModerationService) FlagListing(ctx context.Context, ref domain.ListingRef, reason string) error {
	err := s.listingRepo.SetModerationStatus(ctx, ref, domain.ListingFlagged, true, reason)
	if err != nil {
		return fmt.Errorf("s.listingRepo.SetModerationStatus -> %w", err)
	}

	return nil
}

func (s *ModerationService) UnflagListing(ctx context.Context, ref domain.ListingRef) error {
	err := s.listingRepo.SetModerationStatus(ctx, ref, domain.ListingActive, false, "")
	if err != nil {
		return fmt.Errorf("s.listingRepo.SetModerationStatus -> %w", err)
	}

	return nil
}

func (s *ModerationService) RemoveListing(ctx context.Context, ref domain.ListingRef) error {
	err := s.listingRepo.SetModerationStatus(ctx, ref, domain.ListingRemoved, false, "")
	if err != nil {
		return fmt.Errorf("s.listingRepo.SetModerationStatus -> %w", err)
	}

	return nil
}

// FileReport raises a moderation ticket against a listing ID, resolving it
// against sale listings first, then swap listings.
func (s *ModerationService) FileReport(ctx context.Context, reporterID, listingID uint, reason string) (domain.TradeReport, error) {
	ref := domain.ListingRef{Kind: domain.ListingKindMoney, ID: listingID}

	if _, err := s.listingRepo.FindMoneyTradeByID(ctx, listingID); err != nil {
		if !errors.Is(err, repository.ErrListingNotFound) {
			return domain.TradeReport{}, fmt.Errorf("s.listingRepo.FindMoneyTradeByID -> %w", err)
		}

		if _, err = s.listingRepo.FindBarterTradeByID(ctx, listingID); err != nil {
			if !errors.Is(err, repository.ErrListingNotFound) {
				return domain.TradeReport{}, fmt.Errorf("s.listingRepo.FindBarterTradeByID -> %w", err)
			}

			return domain.TradeReport{}, ErrReportTargetNotFound
		}

		ref.Kind = domain.ListingKindBarter
	}

	created, err := s.reportRepo.Create(ctx, reporterID, ref, reason)
	if err != nil {
		return domain.TradeReport{}, fmt.Errorf("s.reportRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *ModerationService) ListReports(ctx context.Context) ([]domain.TradeReport, error) {
	reports, err := s.reportRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.reportRepo.FindAll -> %w", err)
	}

	return reports, nil
}

// ResolveReport moves a report through its workflow on behalf of a staff
// member.
func (s *ModerationService) ResolveReport(ctx context.Context, reportID, adminID uint, status domain.ReportStatus, notes string) (domain.TradeReport, error) {
	if !domain.ValidReportStatus(status) {
		return domain.TradeReport{}, ErrInvalidStatus
	}

	updated, err := s.reportRepo.UpdateStatus(ctx, reportID, status, notes, adminID)
	if err != nil {
		return domain.TradeReport{}, fmt.Errorf("s.reportRepo.UpdateStatus -> %w", err)
	}

	return updated, nil
}

func (s *ModerationService) FlaggedListings(ctx context.Context) ([]domain.MarketplaceEntry, error) {
	entries, err := s.listingRepo.FindFlaggedListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.listingRepo.FindFlaggedListings -> %w", err)
	}

	return entries, nil
}

func (s *ModerationService) RecentActivity(ctx context.Context, limit int) ([]domain.TradeHistory, error) {
	history, err := s.tradeRepo.FindRecentHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.tradeRepo.FindRecentHistory -> %w", err)
	}

	return history, nil
}

func (s *ModerationService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	var err error

	if stats.TotalUsers, err = s.userRepo.CountUsers(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.userRepo.CountUsers -> %w", err)
	}

	if stats.ActiveMoneyTrades, stats.ActiveBarterTrades, err = s.listingRepo.CountActive(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.listingRepo.CountActive -> %w", err)
	}

	if stats.FlaggedListings, err = s.listingRepo.CountFlagged(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.listingRepo.CountFlagged -> %w", err)
	}

	if stats.OpenReports, err = s.reportRepo.CountOpen(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.reportRepo.CountOpen -> %w", err)
	}

	if stats.SettledTrades, err = s.tradeRepo.CountHistory(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.tradeRepo.CountHistory -> %w", err)
	}

	if stats.PendingTradeOffers, err = s.tradeRepo.CountPending(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.tradeRepo.CountPending -> %w", err)
	}

	return stats, nil
}
