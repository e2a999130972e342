package identity

import (
	"medisync-service/internal/app/models"
	"time"
)

const (
	metadataFirstName = "first_name"
	metadataLastName  = "last_name"
	metadataAvatarURL = "avatar_url"
	metadataUserType  = "user_type"
)

// MergeProfile combines the stored profile row with the sign-up metadata.
// Stored values win field by field. A missing or unknown role falls back to
// patient. Timestamps come from the row, else now.
func MergeProfile(subjectID string, record *models.ProfileRecord, metadata map[string]interface{}, now time.Time) *models.UserProfile {
	profile := &models.UserProfile{
		ID:        subjectID,
		UserType:  models.RolePatient,
		CreatedAt: now,
		UpdatedAt: now,
	}

	meta := models.PlatformUser{UserMetadata: metadata}
	pick := func(stored *string, key string) *string {
		if stored != nil {
			value := *stored
			return &value
		}
		if value, ok := meta.MetadataString(key); ok {
			return &value
		}
		return nil
	}

	var firstName, lastName, avatarURL *string
	if record != nil {
		firstName, lastName, avatarURL = record.FirstName, record.LastName, record.AvatarURL
		if record.CreatedAt != nil {
			profile.CreatedAt = *record.CreatedAt
		}
		if record.UpdatedAt != nil {
			profile.UpdatedAt = *record.UpdatedAt
		}
	}
	profile.FirstName = pick(firstName, metadataFirstName)
	profile.LastName = pick(lastName, metadataLastName)
	profile.AvatarURL = pick(avatarURL, metadataAvatarURL)

	if record != nil {
		if role, ok := models.ParseRole(record.UserType); ok {
			profile.UserType = role
			return profile
		}
	}
	if value, ok := meta.MetadataString(metadataUserType); ok {
		if role, ok := models.ParseRole(value); ok {
			profile.UserType = role
		}
	}
	return profile
}
