package services

import (
	"fmt"

	"github.com/AnshRaj112/biography-backend/internal/models"
)

// UpdateProfileField sets one header field on the document. Unknown theme
// names are rejected; the viewer falls back to monochrome for legacy values
// but the editor never writes new ones.
func UpdateProfileField(doc *models.ProfileDocument, field string, value any) error {
	switch field {
	case "friendCode", "savedProfiles", "blocks":
		return fmt.Errorf("%w: %s", ErrImmutableField, field)
	}
	s, err := asString(field, value)
	if err != nil {
		return err
	}

	switch field {
	case "name":
		doc.Name = s
	case "role":
		doc.Role = s
	case "location":
		doc.Location = s
	case "avatarUrl":
		doc.AvatarURL = s
	case "bannerUrl":
		doc.BannerURL = s
	case "font":
		f := models.Font(s)
		if f != models.FontSans && f != models.FontSerif && f != models.FontMono {
			return fmt.Errorf("%w: font %q", ErrFieldType, s)
		}
		doc.Font = f
	case "theme":
		t := models.Theme(s)
		if !t.Valid() {
			return fmt.Errorf("%w: theme %q", ErrFieldType, s)
		}
		doc.Theme = t
	case "privacy":
		p := models.Privacy(s)
		if p != models.PrivacyPublic && p != models.PrivacyPrivate {
			return fmt.Errorf("%w: privacy %q", ErrFieldType, s)
		}
		doc.Privacy = p
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// TogglePrivacy flips between public and private. A missing value counts as
// public.
func TogglePrivacy(doc *models.ProfileDocument) models.Privacy {
	if doc.Privacy == models.PrivacyPrivate {
		doc.Privacy = models.PrivacyPublic
	} else {
		doc.Privacy = models.PrivacyPrivate
	}
	return doc.Privacy
}

// ApplyUploadedImage writes an uploaded image URL to the avatar, the banner
// or an image-bearing block.
func ApplyUploadedImage(doc *models.ProfileDocument, target, url string) error {
	switch target {
	case "avatar":
		doc.AvatarURL = url
		return nil
	case "banner":
		doc.BannerURL = url
		return nil
	}
	return NewBlockTree(doc).UpdateField(target, "imageUrl", url)
}
