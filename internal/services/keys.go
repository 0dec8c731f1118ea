package services

import "fmt"

func sessionStateKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func sessionInitializedKey(sessionID string) string {
	return fmt.Sprintf("session:%s:initialized", sessionID)
}

func sessionUserIDsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:userIds", sessionID)
}

func userKey(sessionID, userID string) string {
	return fmt.Sprintf("session:%s:user:%s", sessionID, userID)
}

func submissionsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:submissions", sessionID)
}

func activityKey(sessionID string) string {
	return fmt.Sprintf("session:%s:activity", sessionID)
}

func guessCounterKey(sessionID, date string) string {
	return fmt.Sprintf("session:%s:guesses:%s", sessionID, date)
}

func weeklySubmissionsKey(sessionID, weekID string) string {
	return fmt.Sprintf("submissions:%s:week:%s", sessionID, weekID)
}
