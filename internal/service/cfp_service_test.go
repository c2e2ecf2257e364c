package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "cfptracker/internal/errors"
	"cfptracker/internal/model"
)

func TestCFPService_CreateCFP(t *testing.T) {
	eventDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		closingDate   time.Time
		setupMock     func(*MockCFPRepository)
		expectedError error
	}{
		{
			name:        "closing before event",
			closingDate: eventDate.AddDate(0, -1, 0),
			setupMock: func(m *MockCFPRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.CFP")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "closing equals event",
			closingDate: eventDate,
			setupMock: func(m *MockCFPRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.CFP")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "closing after event rejected",
			closingDate:   eventDate.AddDate(0, 0, 1),
			setupMock:     func(m *MockCFPRepository) {},
			expectedError: apperrors.ErrClosingAfterEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCFPRepository)
			tt.setupMock(mockRepo)

			svc := NewCFPService(mockRepo, nil)
			cfp := &model.CFP{
				Title:       "Test CFP",
				EventName:   "Test Conf",
				EventDate:   eventDate,
				ClosingDate: tt.closingDate,
			}

			created, err := svc.CreateCFP(context.Background(), cfp, 4)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, created)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(4), created.CreatedByID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCFPService_GetCFPNotFound(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCFPService(mockRepo, nil)

	cfp, err := svc.GetCFP(context.Background(), 404)
	assert.Nil(t, cfp)
	assert.Equal(t, apperrors.ErrCFPNotFound, err)
}

func TestCFPService_GetCFPFound(t *testing.T) {
	mockRepo := new(MockCFPRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(testCFP(1, "Found CFP"), nil)

	svc := NewCFPService(mockRepo, nil)

	cfp, err := svc.GetCFP(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Found CFP", cfp.Title)
}
