package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"linguahouse/internal/domain"
	"linguahouse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "japanese", NormalizeLanguage("  Japanese "))
	assert.Equal(t, "", NormalizeLanguage("   "))
}

func TestProfileService_CreateProfile(t *testing.T) {
	tests := []struct {
		name          string
		language      string
		mockLanguage  string
		mockError     error
		expectedError error
		callsRepo     bool
	}{
		{
			name:         "valid",
			language:     " Japanese",
			mockLanguage: "japanese",
			callsRepo:    true,
		},
		{
			name:          "empty language",
			language:      "  ",
			expectedError: domain.ErrValidation,
		},
		{
			name:          "too long",
			language:      strings.Repeat("a", 33),
			expectedError: domain.ErrValidation,
		},
		{
			name:          "already exists",
			language:      "es",
			mockLanguage:  "es",
			mockError:     domain.ErrAlreadyExists,
			expectedError: domain.ErrAlreadyExists,
			callsRepo:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockProfileRepository)
			if tt.callsRepo {
				var ret *domain.Profile
				if tt.mockError == nil {
					ret = testutil.NewTestProfile(123, tt.mockLanguage)
				}
				mockRepo.On("CreateProfile", mock.Anything, int64(123), tt.mockLanguage, domain.DefaultCardSettings()).
					Return(ret, tt.mockError)
			}

			service := NewProfileService(mockRepo, testutil.NewTestLogger())

			profile, err := service.CreateProfile(context.Background(), 123, tt.language)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockLanguage, profile.TargetLanguage)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_UpdateCardSettings(t *testing.T) {
	tests := []struct {
		name          string
		settings      domain.CardSettings
		mockError     error
		expectedError bool
		callsRepo     bool
	}{
		{
			name:      "valid settings",
			settings:  domain.CardSettings{CardsPerSet: 20, TestMethod: domain.TestMethodSelfReview, StreakLength: 3},
			callsRepo: true,
		},
		{
			name:          "zero cards per set",
			settings:      domain.CardSettings{CardsPerSet: 0, TestMethod: domain.TestMethodManual, StreakLength: 3},
			expectedError: true,
		},
		{
			name:          "repository error",
			settings:      domain.DefaultCardSettings(),
			mockError:     errors.New("db error"),
			expectedError: true,
			callsRepo:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockProfileRepository)
			if tt.callsRepo {
				mockRepo.On("UpdateCardSettings", mock.Anything, int64(123), "ja", tt.settings).Return(tt.mockError)
			}

			service := NewProfileService(mockRepo, testutil.NewTestLogger())

			err := service.UpdateCardSettings(context.Background(), 123, "JA", tt.settings)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_Passthrough(t *testing.T) {
	mockRepo := new(testutil.MockProfileRepository)
	settings := domain.DefaultCardSettings()
	profiles := []domain.Profile{*testutil.NewTestProfile(123, "ja")}

	mockRepo.On("GetProfile", mock.Anything, int64(123), "ja").Return(&profiles[0], nil)
	mockRepo.On("ListProfiles", mock.Anything, int64(123)).Return(profiles, nil)
	mockRepo.On("GetCardSettings", mock.Anything, int64(123), "ja").Return(&settings, nil)
	mockRepo.On("DeleteProfile", mock.Anything, int64(123), "ja").Return(domain.NewNotFoundError("profile", "ja"))

	service := NewProfileService(mockRepo, testutil.NewTestLogger())
	ctx := context.Background()

	profile, err := service.GetProfile(ctx, 123, "Ja ")
	assert.NoError(t, err)
	assert.Equal(t, "ja", profile.TargetLanguage)

	list, err := service.ListProfiles(ctx, 123)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := service.GetCardSettings(ctx, 123, "ja")
	assert.NoError(t, err)
	assert.Equal(t, settings, *got)

	err = service.DeleteProfile(ctx, 123, "ja")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mockRepo.AssertExpectations(t)
}
