package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cfptracker/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.CFP{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Email:        "owner@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func day(offset int) time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func seedCFPs(t *testing.T, db *gorm.DB, ownerID uint) {
	t.Helper()
	repo := NewCFPRepository(db)
	fixtures := []model.CFP{
		{Title: "Berlin Go Conf", Location: "Berlin, Germany", TargetAudience: "Go developers", EventType: "Conference", ClosingDate: day(10), EventDate: day(40), EventName: "GoConf", CreatedByID: ownerID},
		{Title: "Berlin Security Meetup", Location: "berlin", TargetAudience: "Security engineers", EventType: "Meetup", ClosingDate: day(5), EventDate: day(20), EventName: "SecMeet", CreatedByID: ownerID},
		{Title: "Remote Data Workshop", Location: "Remote", TargetAudience: "Data engineers", EventType: "Workshop", ClosingDate: day(30), EventDate: day(60), EventName: "DataShop", CreatedByID: ownerID},
		{Title: "Paris Web Conf", Location: "Paris, France", TargetAudience: "Web developers", EventType: "conference", ClosingDate: day(1), EventDate: day(15), EventName: "WebConf", CreatedByID: ownerID},
	}
	for i := range fixtures {
		require.NoError(t, repo.Create(context.Background(), &fixtures[i]))
	}
}

func TestCFPRepository_CreateAndFindRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	repo := NewCFPRepository(db)
	ctx := context.Background()

	cfp := &model.CFP{
		Title:          "Round Trip CFP",
		Description:    "desc",
		EventName:      "RT Conf",
		EventDate:      day(40),
		ClosingDate:    day(10),
		Location:       "Lisbon, Portugal",
		TargetAudience: "Everyone",
		EventType:      "Conference",
		EventURL:       "https://example.com",
		CFPURL:         "https://example.com/cfp",
		Source:         "test",
		CreatedByID:    user.ID,
	}
	require.NoError(t, repo.Create(ctx, cfp))
	assert.NotZero(t, cfp.ID)

	got, err := repo.FindByID(ctx, cfp.ID)
	require.NoError(t, err)
	assert.Equal(t, cfp.Title, got.Title)
	assert.Equal(t, cfp.Description, got.Description)
	assert.Equal(t, cfp.Source, got.Source)
	assert.Equal(t, user.ID, got.CreatedByID)
	assert.True(t, got.ClosingDate.Equal(cfp.ClosingDate))
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt), "created_at and updated_at must match at creation")
}

func TestCFPRepository_FindByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewCFPRepository(db)

	got, err := repo.FindByID(context.Background(), 12345)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCFPRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedCFPs(t, db, user.ID)
	repo := NewCFPRepository(db)
	ctx := context.Background()
	noLimit := CFPFilter{Limit: -1}

	t.Run("no filter returns everything sorted", func(t *testing.T) {
		cfps, err := repo.List(ctx, noLimit)
		require.NoError(t, err)
		assert.Len(t, cfps, 4)
		for i := 1; i < len(cfps); i++ {
			assert.False(t, cfps[i].ClosingDate.Before(cfps[i-1].ClosingDate),
				"results must be non-decreasing by closing_date")
		}
	})

	t.Run("location substring is case-insensitive", func(t *testing.T) {
		cfps, err := repo.List(ctx, CFPFilter{Location: "BERLIN", Limit: -1})
		require.NoError(t, err)
		assert.Len(t, cfps, 2)
		for _, cfp := range cfps {
			assert.Contains(t, []string{"Berlin Go Conf", "Berlin Security Meetup"}, cfp.Title)
		}
	})

	t.Run("event type substring is case-insensitive", func(t *testing.T) {
		cfps, err := repo.List(ctx, CFPFilter{EventType: "conf", Limit: -1})
		require.NoError(t, err)
		assert.Len(t, cfps, 2)
	})

	t.Run("closing date upper bound is inclusive", func(t *testing.T) {
		bound := day(5)
		cfps, err := repo.List(ctx, CFPFilter{ClosingBefore: &bound, Limit: -1})
		require.NoError(t, err)
		assert.Len(t, cfps, 2)
		for _, cfp := range cfps {
			assert.False(t, cfp.ClosingDate.After(bound))
		}
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		cfps, err := repo.List(ctx, CFPFilter{Location: "berlin", EventType: "meetup", Limit: -1})
		require.NoError(t, err)
		require.Len(t, cfps, 1)
		assert.Equal(t, "Berlin Security Meetup", cfps[0].Title)
	})

	t.Run("no matches is an empty result, not an error", func(t *testing.T) {
		cfps, err := repo.List(ctx, CFPFilter{Location: "tokyo", Limit: -1})
		require.NoError(t, err)
		assert.Empty(t, cfps)
	})

	t.Run("audience filter", func(t *testing.T) {
		cfps, err := repo.List(ctx, CFPFilter{TargetAudience: "data", Limit: -1})
		require.NoError(t, err)
		require.Len(t, cfps, 1)
		assert.Equal(t, "Remote Data Workshop", cfps[0].Title)
	})
}

func TestCFPRepository_Pagination(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedCFPs(t, db, user.ID)
	repo := NewCFPRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, CFPFilter{Limit: -1})
	require.NoError(t, err)
	require.Len(t, all, 4)

	page, err := repo.List(ctx, CFPFilter{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)

	// skip=k then limit pages must line up with a prefix of the full listing.
	assert.Equal(t, all[1].ID, page[0].ID)
	assert.Equal(t, all[2].ID, page[1].ID)

	empty, err := repo.List(ctx, CFPFilter{Skip: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)

	zero, err := repo.List(ctx, CFPFilter{Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, zero)
}

func TestCFPRepository_Count(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedCFPs(t, db, user.ID)
	repo := NewCFPRepository(db)
	ctx := context.Background()

	total, err := repo.Count(ctx, CFPFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	berlin, err := repo.Count(ctx, CFPFilter{Location: "berlin"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), berlin)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &model.User{Email: "dup@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.User{Email: "dup@example.com", PasswordHash: "y", IsActive: true}
	err := repo.Create(ctx, second)
	assert.Error(t, err)

	users, err := repo.List(ctx, 0, -1)
	require.NoError(t, err)
	assert.Len(t, users, 1, "no partial record may persist after a failed create")
}
