package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveViewMode(t *testing.T) {
	assert.Equal(t, ModeSignIn, ResolveViewMode("", ""))
	assert.Equal(t, ModePublicView, ResolveViewMode("", "u2"))
	assert.Equal(t, ModeOwner, ResolveViewMode("u1", ""))
	assert.Equal(t, ModeOwner, ResolveViewMode("u1", "u1"))
	assert.Equal(t, ModeVisitor, ResolveViewMode("u1", "u2"))
}

func TestResolveSessionVisitor(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	me := models.ProfileDocument{Name: "Me", FriendCode: "ML-MMMMMM", Privacy: models.PrivacyPublic,
		SavedProfiles: []models.FriendRef{{ID: "owner", Name: "Owner"}}}
	store.Put("me", me)
	store.Put("owner", privateDoc("me"))
	store.Put("stranger", privateDoc())

	view, err := svc.ResolveSession(context.Background(), "me", "owner")
	require.NoError(t, err)
	assert.Equal(t, ModeVisitor, view.Mode)
	require.NoError(t, view.TargetErr)
	assert.Equal(t, "Owner", view.Target.Profile.Name)
	assert.True(t, view.Following)

	view, err = svc.ResolveSession(context.Background(), "me", "stranger")
	require.NoError(t, err)
	var denied *AccessDeniedError
	assert.ErrorAs(t, view.TargetErr, &denied)
	assert.False(t, view.Following)
}

func TestResolveSessionOwnerAndAnonymous(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	store.Put("u1", models.ProfileDocument{Name: "Mine", FriendCode: "ML-AAAAAA", Privacy: models.PrivacyPrivate, SavedProfiles: []models.FriendRef{}})
	ctx := context.Background()

	view, err := svc.ResolveSession(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, ModeOwner, view.Mode)
	require.NotNil(t, view.Viewer)
	assert.Equal(t, "Mine", view.Viewer.Name)

	view, err = svc.ResolveSession(ctx, "", "u1")
	require.NoError(t, err)
	assert.Equal(t, ModePublicView, view.Mode)
	assert.Error(t, view.TargetErr)

	view, err = svc.ResolveSession(ctx, "newbie", "")
	require.NoError(t, err)
	assert.ErrorIs(t, view.TargetErr, ErrNeedsOnboarding)

	view, err = svc.ResolveSession(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, ModeSignIn, view.Mode)
	assert.Nil(t, view.Target)
}
