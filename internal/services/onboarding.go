package services

import (
	"context"
	"strings"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
)

// OnboardingRequest is what a new user fills in before their first save.
type OnboardingRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Theme    string `json:"theme"`
}

// InitialProfile builds the starter document for a new user.
func InitialProfile(req OnboardingRequest) models.ProfileDocument {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "New User"
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "Creator"
	}
	theme := models.Theme(req.Theme)
	if !theme.Valid() {
		theme = models.ThemeMonochrome
	}
	subtitle := strings.TrimSpace(req.Bio)
	if subtitle == "" {
		subtitle = "Welcome to my space"
	}

	intro := DefaultBlock(newBlockID(), models.BlockText, "")
	intro.Title = "Hello World"
	intro.Subtitle = subtitle
	intro.ColSpan = 2

	return models.ProfileDocument{
		Name:          name,
		Role:          role,
		Location:      strings.TrimSpace(req.Location),
		Font:          models.FontSans,
		Theme:         theme,
		Privacy:       models.PrivacyPublic,
		FriendCode:    utils.GenerateFriendCode(),
		SavedProfiles: []models.FriendRef{},
		Blocks:        []models.Block{intro},
	}
}

// CreateInitialProfile builds and saves the starter document. It is the
// moment a user's document first comes into existence.
func (s *ProfileService) CreateInitialProfile(ctx context.Context, userID string, req OnboardingRequest) (*models.ProfileDocument, error) {
	doc := InitialProfile(req)
	if err := s.SaveProfile(ctx, userID, &doc); err != nil {
		return &doc, err
	}
	return &doc, nil
}
