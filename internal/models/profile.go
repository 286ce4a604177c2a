package models

import (
	"time"
)

type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// FriendRef is a denormalized snapshot of another user's profile header.
// It is copied at the time the friend is added and never refreshed.
type FriendRef struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	AvatarURL string `bson:"avatarUrl" json:"avatarUrl"`
	Role      string `bson:"role" json:"role"`
}

// ProfileDocument is the whole profile of one user. It is always read and
// written as a unit.
type ProfileDocument struct {
	Name      string `bson:"name" json:"name"`
	Role      string `bson:"role" json:"role"`
	Location  string `bson:"location" json:"location"`
	AvatarURL string `bson:"avatarUrl" json:"avatarUrl"`
	BannerURL string `bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	Font      Font   `bson:"font,omitempty" json:"font,omitempty"`
	Theme     Theme  `bson:"theme" json:"theme"`

	// Privacy, FriendCode and SavedProfiles may be missing on documents
	// written by older clients. An empty string or a nil slice means absent;
	// an empty non-nil SavedProfiles is a real, empty friend list.
	Privacy       Privacy     `bson:"privacy,omitempty" json:"privacy,omitempty"`
	FriendCode    string      `bson:"friendCode,omitempty" json:"friendCode,omitempty"`
	SavedProfiles []FriendRef `bson:"savedProfiles" json:"savedProfiles"`

	Blocks []Block `bson:"blocks" json:"blocks"`
}

// ProfileRecord is the row stored in the profiles collection.
type ProfileRecord struct {
	ID        string          `bson:"_id" json:"id"`
	Data      ProfileDocument `bson:"data" json:"data"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

// IsFriend reports whether userID appears in the document's friend list.
func (d *ProfileDocument) IsFriend(userID string) bool {
	if userID == "" {
		return false
	}
	for _, f := range d.SavedProfiles {
		if f.ID == userID {
			return true
		}
	}
	return false
}

// Snapshot builds the FriendRef other users store when they add this profile.
func (d *ProfileDocument) Snapshot(id string) FriendRef {
	return FriendRef{
		ID:        id,
		Name:      d.Name,
		AvatarURL: d.AvatarURL,
		Role:      d.Role,
	}
}

// Clone returns a deep copy. Nil slices stay nil so that structural
// comparison between a clone and its source holds.
func (d ProfileDocument) Clone() ProfileDocument {
	out := d
	if d.SavedProfiles != nil {
		out.SavedProfiles = make([]FriendRef, len(d.SavedProfiles))
		copy(out.SavedProfiles, d.SavedProfiles)
	}
	if d.Blocks != nil {
		out.Blocks = make([]Block, len(d.Blocks))
		copy(out.Blocks, d.Blocks)
	}
	return out
}
