package model

type Streak struct {
	DayCount        uint64 `json:"day_count" mapstructure:"dayCount"`
	MultiplierCount uint64 `json:"multiplier_count" mapstructure:"multiplierCount"`
}

// UserProfile holds the statistics of a user on the profile service. Streak
// is nil when the service does not report one.
type UserProfile struct {
	ID             string  `json:"id" mapstructure:"id"`
	Username       string  `json:"username" mapstructure:"-"`
	FollowingCount uint64  `json:"following_count" mapstructure:"followingCount"`
	FollowerCount  uint64  `json:"follower_count" mapstructure:"followerCount"`
	DscvrPoints    uint64  `json:"dscvr_points" mapstructure:"dscvrPoints"`
	Streak         *Streak `json:"streak" mapstructure:"streak"`
}

type GetProfileRequest struct {
	Username string `json:"username"`
}

type GetProfileResponse struct {
	Profile UserProfile `json:"profile"`
}
