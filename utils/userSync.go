package utils

import (
	"elearn/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// SyncUserToAnalytics pushes a newly registered user to the external
// analytics service. Fire-and-forget: a sync failure never blocks signup,
// it is only logged.
func SyncUserToAnalytics(userID uint, name, email string) {
	baseURL := config.AppConfig.UserSyncURL
	if baseURL == "" {
		return
	}

	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"user_id": userID,
			"name":    name,
			"email":   email,
		}).
		Post(baseURL + "/users")
	if err != nil {
		log.Printf("Error syncing user %d to analytics: %v", userID, err)
		return
	}
	if resp.IsError() {
		log.Printf("Analytics sync for user %d failed: %s", userID, resp.Status())
		return
	}
	log.Printf("User synced successfully to analytics service: %s", email)
}
