package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hygienewatch/hygienewatch-backend/internal/middleware"
	"github.com/hygienewatch/hygienewatch-backend/internal/models"
	"github.com/hygienewatch/hygienewatch-backend/internal/store"
)

// UpdateProfileRequest carries the self-service profile fields. Role is
// absent on purpose: only an admin touches it, through its own endpoint.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Location  *string `json:"location,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AboutMe   *string `json:"about_me,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// GetProfile returns the caller's profile document.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)
	ctx, cancel := opContext(r)
	defer cancel()

	profile := store.GetProfile(ctx, auth.User.ID)
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "profile": profile})
}

// UpdateProfile merges self-service fields into the caller's profile and
// records the change in their activity log.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	profile := store.GetProfile(ctx, auth.User.ID)
	if profile == nil {
		created := models.DefaultProfile(auth.User.ID, auth.User.Name, auth.User.Email)
		profile = &created
	}

	avatarChanged := false
	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Location != nil {
		profile.Location = strings.TrimSpace(*req.Location)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AboutMe != nil {
		profile.AboutMe = strings.TrimSpace(*req.AboutMe)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*req.AvatarURL)
		avatarChanged = true
	}

	if err := store.SaveProfile(ctx, *profile); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	action := models.ActionProfileUpdated
	description := "Profile details were updated"
	if avatarChanged {
		action = models.ActionPhotoUpdated
		description = "Profile photo was updated"
	}
	store.LogActivity(ctx, models.ActivityEntry{
		UserID:      auth.User.ID,
		Action:      action,
		Description: description,
	})

	// Keep the tracked session's profile snapshot in sync with the store.
	if u := authContext.User(); u != nil && u.ID == auth.User.ID {
		authContext.RefreshProfile(ctx)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated",
		"profile": profile,
	})
}

// UpdatePrivacy saves the caller's consent toggles. The form submits the
// complete block, so this replaces rather than merges.
func UpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromRequest(r)

	var prefs models.PrivacyPrefs
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	// First save may precede the profile document; create it on demand.
	if store.GetProfile(ctx, auth.User.ID) == nil {
		profile := models.DefaultProfile(auth.User.ID, auth.User.Name, auth.User.Email)
		profile.Privacy = &prefs
		if err := store.SaveProfile(ctx, profile); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else if err := store.SetPrivacyPrefs(ctx, auth.User.ID, prefs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	store.LogActivity(ctx, models.ActivityEntry{
		UserID:      auth.User.ID,
		Action:      models.ActionPrivacyUpdated,
		Description: "Privacy settings were updated",
	})

	if u := authContext.User(); u != nil && u.ID == auth.User.ID {
		authContext.RefreshProfile(ctx)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Privacy settings saved",
		"privacy": prefs,
	})
}
