package services

import (
	config "github.com/notewala/gyan_notes/configs"
)

// Policy constants. The community-vote thresholds and review windows are
// deliberately configurable: they encode moderation policy, not code.
const (
	defaultApproveNetVotes  = 3
	defaultRejectNetVotes   = 3
	defaultAutoReviewHours  = 48
	defaultRequestTTLDays   = 30
	defaultVoteWindowSecs   = 60
	defaultVoteWindowLimit  = 10
	defaultMonthlyReferrals = 5

	SignupBonusPoints   = 10
	UploadBonusPoints   = 10
	ReferralBonusPoints = 20
	ProfileBonusPoints  = 5

	DailyUploadLimit = 3

	baseDownloadCost     = 50
	downloadCostStep     = 5
	downloadCostStepSize = 10
)

// ApproveNetVotes is the net (up - down) vote count at which a
// community-review fulfillment is approved.
func ApproveNetVotes() int {
	return config.ConfigInt("GN_APPROVE_NET_VOTES", defaultApproveNetVotes)
}

// RejectNetVotes is the net (down - up) vote count at which a
// community-review fulfillment is rejected.
func RejectNetVotes() int {
	return config.ConfigInt("GN_REJECT_NET_VOTES", defaultRejectNetVotes)
}

func AutoReviewHours() int {
	return config.ConfigInt("GN_AUTO_REVIEW_HOURS", defaultAutoReviewHours)
}

func RequestTTLDays() int {
	return config.ConfigInt("GN_REQUEST_TTL_DAYS", defaultRequestTTLDays)
}

func VoteWindowSeconds() int {
	return config.ConfigInt("GN_VOTE_WINDOW_SECONDS", defaultVoteWindowSecs)
}

func VoteWindowLimit() int {
	return config.ConfigInt("GN_VOTE_WINDOW_LIMIT", defaultVoteWindowLimit)
}

func MonthlyReferralLimit() int {
	return config.ConfigInt("GN_MONTHLY_REFERRAL_LIMIT", defaultMonthlyReferrals)
}

// DownloadCost prices a note download from its trust score: the base cost
// plus a step for every ten points of trust.
func DownloadCost(trustScore int) int {
	if trustScore < 0 {
		trustScore = 0
	}
	return baseDownloadCost + (trustScore/downloadCostStepSize)*downloadCostStep
}
