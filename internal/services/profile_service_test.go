package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileService(t *testing.T) (*ProfileService, *MemoryProfileStore, *ProfileCache) {
	t.Helper()
	_, client := newTestRedis(t)
	store := NewMemoryProfileStore()
	cache := NewProfileCache(NewCacheService(client, 0))
	return NewProfileService(store, cache), store, cache
}

func privateDoc(friends ...string) models.ProfileDocument {
	doc := models.ProfileDocument{
		Name:          "Owner",
		Theme:         models.ThemeSwiss,
		Privacy:       models.PrivacyPrivate,
		FriendCode:    "ML-ABCDEF",
		SavedProfiles: []models.FriendRef{},
	}
	for _, id := range friends {
		doc.SavedProfiles = append(doc.SavedProfiles, models.FriendRef{ID: id, Name: id})
	}
	return doc
}

func TestLoadPrivateProfileGate(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	store.Put("owner", privateDoc("v1"))
	ctx := context.Background()

	res, err := svc.Load(ctx, "owner", true, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Owner", res.Profile.Name)

	_, err = svc.Load(ctx, "owner", true, "v2")
	var denied *AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "ML-ABCDEF", denied.FriendCode)

	_, err = svc.Load(ctx, "owner", true, "")
	require.ErrorAs(t, err, &denied)

	res, err = svc.Load(ctx, "owner", false, "owner")
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPrivate, res.Profile.Privacy)
}

func TestFriendshipIsOneWay(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	// a lists b, b lists nobody
	a := privateDoc("b")
	store.Put("a", a)
	store.Put("b", privateDoc())
	ctx := context.Background()

	_, err := svc.Load(ctx, "a", true, "b")
	require.NoError(t, err)

	_, err = svc.Load(ctx, "b", true, "a")
	var denied *AccessDeniedError
	assert.ErrorAs(t, err, &denied)
}

func TestLoadBackfillsOnceAndPersists(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	store.Put("u1", models.ProfileDocument{Name: "Legacy"})
	ctx := context.Background()

	first, err := svc.Load(ctx, "u1", true, "")
	require.NoError(t, err)
	assert.True(t, first.Backfilled)
	assert.True(t, utils.ValidFriendCode(first.Profile.FriendCode))
	assert.Equal(t, models.PrivacyPublic, first.Profile.Privacy)
	assert.NotNil(t, first.Profile.SavedProfiles)

	svc.Wait()
	assert.Equal(t, 1, store.Upserts())

	second, err := svc.Load(ctx, "u1", false, "u1")
	require.NoError(t, err)
	assert.False(t, second.Backfilled)
	assert.Equal(t, first.Profile.FriendCode, second.Profile.FriendCode)

	svc.Wait()
	assert.Equal(t, 1, store.Upserts())
}

func TestLoadBackfillPersistFailureIsNotFatal(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	store.Put("u1", models.ProfileDocument{Name: "Legacy"})
	store.UpsertErr = errors.New("offline")

	res, err := svc.Load(context.Background(), "u1", true, "")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Profile.FriendCode)
	svc.Wait()
}

func TestLoadKeepsFriendCodeWhenBackfillNeverPersisted(t *testing.T) {
	svc, store, _ := newTestProfileService(t)
	store.Put("u1", models.ProfileDocument{Name: "Legacy"})
	store.UpsertErr = errors.New("offline")
	ctx := context.Background()

	first, err := svc.Load(ctx, "u1", false, "u1")
	require.NoError(t, err)
	second, err := svc.Load(ctx, "u1", false, "u1")
	require.NoError(t, err)
	svc.Wait()
	assert.Equal(t, first.Profile.FriendCode, second.Profile.FriendCode)

	store.UpsertErr = nil
	third, err := svc.Load(ctx, "u1", false, "u1")
	require.NoError(t, err)
	assert.True(t, third.Backfilled)
	svc.Wait()

	stored, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, first.Profile.FriendCode, stored.FriendCode)
	assert.Equal(t, first.Profile.FriendCode, third.Profile.FriendCode)
}

func TestLoadMissingDocument(t *testing.T) {
	svc, _, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.Load(ctx, "ghost", true, "")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.Load(ctx, "ghost", false, "ghost")
	assert.ErrorIs(t, err, ErrNeedsOnboarding)
}

func TestLoadStoreFailure(t *testing.T) {
	svc, store, cache := newTestProfileService(t)
	store.FetchErr = errors.New("connection reset")
	ctx := context.Background()

	_, err := svc.Load(ctx, "u1", true, "")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.Load(ctx, "u1", false, "u1")
	assert.ErrorIs(t, err, ErrNeedsOnboarding)

	cache.Store(ctx, "u1", &models.ProfileDocument{Name: "Offline Copy"})
	res, err := svc.Load(ctx, "u1", false, "u1")
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, "Offline Copy", res.Profile.Name)
	assert.NotEmpty(t, res.Profile.FriendCode)
}

func TestOwnerLoadRefreshesCache(t *testing.T) {
	svc, store, cache := newTestProfileService(t)
	ctx := context.Background()
	cache.Store(ctx, "u1", &models.ProfileDocument{Name: "Stale"})
	store.Put("u1", models.ProfileDocument{Name: "Fresh", FriendCode: "ML-ZZZZZZ", Privacy: models.PrivacyPublic, SavedProfiles: []models.FriendRef{}})

	res, err := svc.Load(ctx, "u1", false, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", res.Profile.Name)
	assert.False(t, res.Cached)

	got, ok := cache.Load(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, "Fresh", got.Name)
}

func TestSaveProfile(t *testing.T) {
	svc, store, cache := newTestProfileService(t)
	ctx := context.Background()

	doc := &models.ProfileDocument{Name: "Maya"}
	require.NoError(t, svc.SaveProfile(ctx, "u1", doc))
	assert.True(t, utils.ValidFriendCode(doc.FriendCode))

	stored, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, doc.FriendCode, stored.FriendCode)

	store.UpsertErr = errors.New("offline")
	doc.Name = "Maya L"
	err := svc.SaveProfile(ctx, "u1", doc)
	var failed *SaveFailedError
	require.ErrorAs(t, err, &failed)

	cached, ok := cache.Load(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, "Maya L", cached.Name)
}

func TestCreateInitialProfile(t *testing.T) {
	svc, store, _ := newTestProfileService(t)

	doc, err := svc.CreateInitialProfile(context.Background(), "u1", OnboardingRequest{Theme: "nope", Bio: "hi there"})
	require.NoError(t, err)
	assert.Equal(t, "New User", doc.Name)
	assert.Equal(t, "Creator", doc.Role)
	assert.Equal(t, models.ThemeMonochrome, doc.Theme)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "Hello World", doc.Blocks[0].Title)
	assert.Equal(t, "hi there", doc.Blocks[0].Subtitle)
	assert.Equal(t, 2, doc.Blocks[0].ColSpan)

	_, ok := store.Get("u1")
	assert.True(t, ok)

	other := InitialProfile(OnboardingRequest{Name: "Ada", Theme: "gameboy"})
	assert.Equal(t, models.ThemeGameboy, other.Theme)
	assert.Equal(t, "Welcome to my space", other.Blocks[0].Subtitle)
}
