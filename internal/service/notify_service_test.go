package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cfptracker/internal/model"
	"cfptracker/internal/repository"
)

// MockCFPRepository is a mock implementation of CFPRepository.
type MockCFPRepository struct {
	mock.Mock
}

func (m *MockCFPRepository) Create(ctx context.Context, cfp *model.CFP) error {
	args := m.Called(ctx, cfp)
	return args.Error(0)
}

func (m *MockCFPRepository) FindByID(ctx context.Context, id uint) (*model.CFP, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CFP), args.Error(1)
}

func (m *MockCFPRepository) List(ctx context.Context, filter repository.CFPFilter) ([]model.CFP, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CFP), args.Error(1)
}

func (m *MockCFPRepository) Count(ctx context.Context, filter repository.CFPFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// fakePoster records chat.postMessage calls. MsgOption values are opaque
// closures, so the digest text itself is covered by the renderDigest tests.
type fakePoster struct {
	calls   int
	channel string
	err     error
}

func (f *fakePoster) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.calls++
	f.channel = channelID
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "1700000000.000100", nil
}

func testCFP(id uint, title string) *model.CFP {
	return &model.CFP{
		ID:             id,
		Title:          title,
		EventName:      title + " Conf",
		EventDate:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ClosingDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Location:       "Berlin",
		TargetAudience: "Engineers",
		EventURL:       "https://example.com/event",
		CFPURL:         "https://example.com/cfp",
	}
}

func TestNotifyService_NoChannelConfigured(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{1, 2}, "")

	assert.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "No Slack channel specified", outcome.Message)
	assert.Empty(t, outcome.SentTo)
	assert.Zero(t, poster.calls)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestNotifyService_EmptyIDList(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), nil, "")

	assert.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "No CFPs found", outcome.Message)
	assert.Equal(t, "C0DEFAULT", outcome.SentTo)
	assert.Zero(t, poster.calls)
}

func TestNotifyService_AllIDsUnresolvable(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{7, 8}, "")

	assert.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "No CFPs found", outcome.Message)
	assert.Equal(t, []uint{7, 8}, outcome.SkippedIDs)
	assert.Zero(t, poster.calls)
}

func TestNotifyService_SuccessfulDispatch(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(testCFP(1, "First CFP"), nil)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(testCFP(2, "Second CFP"), nil)
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{1, 2}, "")

	assert.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "Notifications sent successfully", outcome.Message)
	assert.Equal(t, "C0DEFAULT", outcome.SentTo)
	assert.Empty(t, outcome.SkippedIDs)
	assert.Equal(t, 1, poster.calls)
	assert.Equal(t, "C0DEFAULT", poster.channel)
}

func TestNotifyService_ChannelOverrideWins(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(testCFP(1, "First CFP"), nil)
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{1}, "C0OVERRIDE")

	assert.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "C0OVERRIDE", outcome.SentTo)
	assert.Equal(t, "C0OVERRIDE", poster.channel)
}

func TestNotifyService_UnresolvableIDsSkipped(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(testCFP(1, "First CFP"), nil)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(testCFP(2, "Second CFP"), nil)
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{1, 99, 2}, "")

	assert.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, []uint{99}, outcome.SkippedIDs)
	assert.Equal(t, 1, poster.calls)
}

func TestNotifyService_SlackFailureBecomesOutcome(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(testCFP(1, "First CFP"), nil)
	poster := &fakePoster{err: errors.New("channel_not_found")}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{1}, "")

	assert.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "Error sending notification")
	assert.Contains(t, outcome.Message, "channel_not_found")
	assert.Equal(t, "C0DEFAULT", outcome.SentTo)
	assert.Equal(t, 1, poster.calls)
}

func TestNotifyService_StoreErrorIsFatal(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, errors.New("connection refused"))
	poster := &fakePoster{}
	svc := NewNotifyService(mockRepo, poster, "C0DEFAULT", 10*time.Second)

	outcome, err := svc.Send(context.Background(), []uint{1}, "")

	assert.Error(t, err)
	assert.Nil(t, outcome)
	assert.Zero(t, poster.calls)
}

func TestRenderDigest(t *testing.T) {
	cfps := []model.CFP{*testCFP(1, "First CFP"), *testCFP(2, "Second CFP")}

	message := renderDigest(cfps)

	assert.True(t, strings.HasPrefix(message, "🎯 New CFP Notifications:\n\n"))
	first := strings.Index(message, "*First CFP*")
	second := strings.Index(message, "*Second CFP*")
	assert.Greater(t, first, 0)
	assert.Greater(t, second, first, "CFPs must appear in input order")
	assert.Contains(t, message, "Event: First CFP Conf\n")
	assert.Contains(t, message, "Date: 2026-10-01\n")
	assert.Contains(t, message, "Closing: 2026-09-01\n")
	assert.Contains(t, message, "Location: Berlin\n")
	assert.Contains(t, message, "Target Audience: Engineers\n")
	assert.Contains(t, message, "Event URL: https://example.com/event\n")
	assert.Contains(t, message, "CFP URL: https://example.com/cfp\n\n")
}
