package kvstore

import "strings"

const (
	workoutKeySuffix  = "user_workout"
	progressKeySuffix = "workout_progress"
	pointsKeySuffix   = "points"
	userKeyPrefix     = "user:"
)

func key(ns, name string) string {
	return ns + ":" + name
}

func WorkoutKey(ns string) string {
	return key(ns, workoutKeySuffix)
}

func ProgressKey(ns string) string {
	return key(ns, progressKeySuffix)
}

func PointsKey(ns string) string {
	return key(ns, pointsKeySuffix)
}

func userKey(ns, email string) string {
	return key(ns, userKeyPrefix+strings.ToLower(strings.TrimSpace(email)))
}
