package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrReportTargetNotFound = errors.New("reported listing not found")
)

const (
	ReportStatusPending       = "pending"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
	ReportStatusDismissed     = "dismissed"
)

const (
	ListingKindMoney  = "money"
	ListingKindBarter = "barter"
)

type TradeReport struct {
	ID uint `gorm:"primaryKey"`

	ReporterID uint `gorm:"not null;index"`
	Reporter   User `gorm:"foreignKey:ReporterID"`

	ListingKind string `gorm:"not null;index"`
	ListingID   uint   `gorm:"not null;index"`

	Reason     string `gorm:"not null"`
	Status     string `gorm:"not null;default:pending;index"`
	AdminNotes string `gorm:"not null;default:''"`

	ResolvedByID *uint
	ResolvedBy   *User `gorm:"foreignKey:ResolvedByID"`
	ResolvedAt   *time.Time

	CreatedAt time.Time `gorm:"not null"`
}

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

// Insert files a report against an existing listing. The kind must already
// be resolved by the caller; a missing target maps to ErrReportTargetNotFound.
func (d *ReportDAO) Insert(ctx context.Context, report TradeReport) (TradeReport, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		var err error
		switch report.ListingKind {
		case ListingKindMoney:
			err = tx.Model(&MoneyTrade{}).Where("id = ?", report.ListingID).Count(&count).Error
		case ListingKindBarter:
			err = tx.Model(&BarterTrade{}).Where("id = ?", report.ListingID).Count(&count).Error
		default:
			return ErrReportTargetNotFound
		}
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrReportTargetNotFound
		}

		report.Status = ReportStatusPending

		return tx.Create(&report).Error
	})
	if err != nil {
		return TradeReport{}, err
	}

	return d.FindByID(ctx, report.ID)
}

func (d *ReportDAO) FindByID(ctx context.Context, id uint) (TradeReport, error) {
	var report TradeReport

	result := d.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ResolvedBy").
		First(&report, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TradeReport{}, ErrReportNotFound
		}

		return TradeReport{}, result.Error
	}

	return report, nil
}

func (d *ReportDAO) FindAll(ctx context.Context) ([]TradeReport, error) {
	var reports []TradeReport

	result := d.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ResolvedBy").
		Order("created_at DESC").
		Find(&reports)
	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

func (d *ReportDAO) FindByStatus(ctx context.Context, status string) ([]TradeReport, error) {
	var reports []TradeReport

	result := d.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ResolvedBy").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reports)
	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// UpdateStatus moves a report through its workflow. Terminal statuses stamp
// the resolving staff member and time; moving back to an open status clears
// both.
func (d *ReportDAO) UpdateStatus(ctx context.Context, id uint, status, adminNotes string, resolverID uint) (TradeReport, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report TradeReport
		if err := forUpdate(tx).First(&report, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}

		updates := map[string]any{
			"status":      status,
			"admin_notes": adminNotes,
		}
		if status == ReportStatusResolved || status == ReportStatusDismissed {
			now := time.Now()
			updates["resolved_by_id"] = resolverID
			updates["resolved_at"] = now
		} else {
			updates["resolved_by_id"] = nil
			updates["resolved_at"] = nil
		}

		return tx.Model(&TradeReport{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return TradeReport{}, err
	}

	return d.FindByID(ctx, id)
}

func (d *ReportDAO) CountOpen(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&TradeReport{}).
		Where("status IN ?", []string{ReportStatusPending, ReportStatusInvestigating}).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
