package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/actually-app/actually/dbmodels"
)

// GoogleTokens resolves Google OAuth access tokens for users, refreshing
// expired ones when a refresh token and an OAuth config are available.
type GoogleTokens struct {
	DB     *gorm.DB
	Config *oauth2.Config // nil when Google OAuth is not configured
}

// AccessToken returns "" with a nil error when the user has no linked Google
// account.
func (s *GoogleTokens) AccessToken(ctx context.Context, userID uuid.UUID) (string, error) {
	var row models.GoogleToken
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if row.Expiry.IsZero() || row.Expiry.After(time.Now().Add(time.Minute)) {
		return row.AccessToken, nil
	}
	if s.Config == nil || row.RefreshToken == "" {
		return row.AccessToken, nil
	}

	refreshed, err := s.Config.TokenSource(ctx, &oauth2.Token{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		Expiry:       row.Expiry,
	}).Token()
	if err != nil {
		return "", fmt.Errorf("refresh google token: %w", err)
	}

	if refreshed.AccessToken != row.AccessToken {
		row.AccessToken = refreshed.AccessToken
		row.Expiry = refreshed.Expiry
		if refreshed.RefreshToken != "" {
			row.RefreshToken = refreshed.RefreshToken
		}
		if err := s.DB.WithContext(ctx).Save(&row).Error; err != nil {
			return "", err
		}
	}
	return refreshed.AccessToken, nil
}

func (s *GoogleTokens) Save(ctx context.Context, userID uuid.UUID, token *oauth2.Token) error {
	row := models.GoogleToken{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expiry", "updated_at"}),
	}).Create(&row).Error
}

func (s *GoogleTokens) Connected(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.GoogleToken{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
