package repository

import (
	"context"
	"fmt"

	"github.com/poketrade/marketplace-api/internal/domain"
	"github.com/poketrade/marketplace-api/internal/repository/dao"
)

var (
	ErrReportNotFound       = dao.ErrReportNotFound
	ErrReportTargetNotFound = dao.ErrReportTargetNotFound
)

type ReportDAO interface {
	Insert(ctx context.Context, report dao.TradeReport) (dao.TradeReport, error)
	FindByID(ctx context.Context, id uint) (dao.TradeReport, error)
	FindAll(ctx context.Context) ([]dao.TradeReport, error)
	FindByStatus(ctx context.Context, status string) ([]dao.TradeReport, error)
	UpdateStatus(ctx context.Context, id uint, status, adminNotes string, resolverID uint) (dao.TradeReport, error)
	CountOpen(ctx context.Context) (int64, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) Create(ctx context.Context, reporterID uint, listing domain.ListingRef, reason string) (domain.TradeReport, error) {
	created, err := r.dao.Insert(ctx, dao.TradeReport{
		ReporterID:  reporterID,
		ListingKind: string(listing.Kind),
		ListingID:   listing.ID,
		Reason:      reason,
	})
	if err != nil {
		return domain.TradeReport{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint) (domain.TradeReport, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.TradeReport{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ReportRepository) FindAll(ctx context.Context) ([]domain.TradeReport, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	reports := make([]domain.TradeReport, 0, len(found))
	for _, report := range found {
		reports = append(reports, r.daoToDomain(report))
	}

	return reports, nil
}

func (r *ReportRepository) FindByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.TradeReport, error) {
	found, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	reports := make([]domain.TradeReport, 0, len(found))
	for _, report := range found {
		reports = append(reports, r.daoToDomain(report))
	}

	return reports, nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id uint, status domain.ReportStatus, adminNotes string, resolverID uint) (domain.TradeReport, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status), adminNotes, resolverID)
	if err != nil {
		return domain.TradeReport{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ReportRepository) CountOpen(ctx context.Context) (int64, error) {
	count, err := r.dao.CountOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountOpen -> %w", err)
	}

	return count, nil
}

func (r *ReportRepository) daoToDomain(report dao.TradeReport) domain.TradeReport {
	converted := domain.TradeReport{
		ID: report.ID,
		Reporter: domain.SimpleUser{
			ID:       report.Reporter.ID,
			Username: report.Reporter.Username,
		},
		Listing: domain.ListingRef{
			Kind: domain.ListingKind(report.ListingKind),
			ID:   report.ListingID,
		},
		Reason:     report.Reason,
		Status:     domain.ReportStatus(report.Status),
		AdminNotes: report.AdminNotes,
		ResolvedAt: report.ResolvedAt,
		CreatedAt:  report.CreatedAt,
	}

	if report.ResolvedBy != nil {
		converted.ResolvedBy = &domain.SimpleUser{
			ID:       report.ResolvedBy.ID,
			Username: report.ResolvedBy.Username,
		}
	}

	return converted
}
