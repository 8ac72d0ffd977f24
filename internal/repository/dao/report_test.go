package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportDAO_Insert(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	reports := NewReportDAO(db)

	seller := seedUser(t, db, "ash", 100)
	reporter := seedUser(t, db, "misty", 100)
	pokemon := seedPokemon(t, db, seller.ID, "pikachu")

	listing, err := listings.CreateMoneyTrade(context.Background(), seller.ID, pokemon.ID, 50)
	require.NoError(t, err)

	created, err := reports.Insert(context.Background(), TradeReport{
		ReporterID:  reporter.ID,
		ListingKind: ListingKindMoney,
		ListingID:   listing.ID,
		Reason:      "price gouging",
		Status:      ReportStatusResolved, // ignored: reports always start pending
	})
	require.NoError(t, err)
	assert.Equal(t, ReportStatusPending, created.Status)
	assert.Equal(t, "misty", created.Reporter.Username)
	assert.Nil(t, created.ResolvedByID)
	assert.Nil(t, created.ResolvedAt)

	t.Run("rejects a missing target", func(t *testing.T) {
		_, err := reports.Insert(context.Background(), TradeReport{
			ReporterID:  reporter.ID,
			ListingKind: ListingKindBarter,
			ListingID:   9999,
			Reason:      "nothing there",
		})
		assert.ErrorIs(t, err, ErrReportTargetNotFound)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		_, err := reports.Insert(context.Background(), TradeReport{
			ReporterID:  reporter.ID,
			ListingKind: "auction",
			ListingID:   listing.ID,
			Reason:      "bad kind",
		})
		assert.ErrorIs(t, err, ErrReportTargetNotFound)
	})
}

func TestReportDAO_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	reports := NewReportDAO(db)

	seller := seedUser(t, db, "ash", 100)
	reporter := seedUser(t, db, "misty", 100)
	staff := seedUser(t, db, "oak", 100)
	pokemon := seedPokemon(t, db, seller.ID, "pikachu")

	listing, err := listings.CreateBarterTrade(context.Background(), seller.ID, pokemon.ID, "")
	require.NoError(t, err)

	report, err := reports.Insert(context.Background(), TradeReport{
		ReporterID:  reporter.ID,
		ListingKind: ListingKindBarter,
		ListingID:   listing.ID,
		Reason:      "misleading description",
	})
	require.NoError(t, err)

	t.Run("terminal status stamps the resolver", func(t *testing.T) {
		updated, err := reports.UpdateStatus(context.Background(), report.ID, ReportStatusResolved, "listing removed", staff.ID)
		require.NoError(t, err)
		assert.Equal(t, ReportStatusResolved, updated.Status)
		assert.Equal(t, "listing removed", updated.AdminNotes)
		require.NotNil(t, updated.ResolvedByID)
		assert.Equal(t, staff.ID, *updated.ResolvedByID)
		require.NotNil(t, updated.ResolvedBy)
		assert.Equal(t, "oak", updated.ResolvedBy.Username)
		assert.NotNil(t, updated.ResolvedAt)
	})

	t.Run("reopening clears the resolver", func(t *testing.T) {
		updated, err := reports.UpdateStatus(context.Background(), report.ID, ReportStatusInvestigating, "second look", staff.ID)
		require.NoError(t, err)
		assert.Equal(t, ReportStatusInvestigating, updated.Status)
		assert.Nil(t, updated.ResolvedByID)
		assert.Nil(t, updated.ResolvedAt)
	})

	t.Run("unknown report", func(t *testing.T) {
		_, err := reports.UpdateStatus(context.Background(), 9999, ReportStatusResolved, "", staff.ID)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})
}

func TestReportDAO_CountOpen(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingDAO(db)
	reports := NewReportDAO(db)

	seller := seedUser(t, db, "ash", 100)
	reporter := seedUser(t, db, "misty", 100)
	staff := seedUser(t, db, "oak", 100)

	file := func(name string) TradeReport {
		pokemon := seedPokemon(t, db, seller.ID, name)
		listing, err := listings.CreateMoneyTrade(context.Background(), seller.ID, pokemon.ID, 10)
		require.NoError(t, err)

		report, err := reports.Insert(context.Background(), TradeReport{
			ReporterID:  reporter.ID,
			ListingKind: ListingKindMoney,
			ListingID:   listing.ID,
			Reason:      "suspicious",
		})
		require.NoError(t, err)

		return report
	}

	first := file("pikachu")
	second := file("eevee")
	file("snorlax")

	_, err := reports.UpdateStatus(context.Background(), first.ID, ReportStatusInvestigating, "", staff.ID)
	require.NoError(t, err)
	_, err = reports.UpdateStatus(context.Background(), second.ID, ReportStatusDismissed, "no issue", staff.ID)
	require.NoError(t, err)

	// pending + investigating count as open, dismissed does not.
	count, err := reports.CountOpen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
