package producer

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// UserStatus is the lifecycle status stored with every user row.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusInactive  UserStatus = "inactive"
	StatusSuspended UserStatus = "suspended"
)

// ActivityType classifies an activity row.
type ActivityType string

const (
	ActivityLogin          ActivityType = "login"
	ActivityLogout         ActivityType = "logout"
	ActivityProfileUpdate  ActivityType = "profile_update"
	ActivityPasswordChange ActivityType = "password_change"
	ActivityPurchase       ActivityType = "purchase"
	ActivityViewProduct    ActivityType = "view_product"
	ActivityAddToCart      ActivityType = "add_to_cart"
	ActivityCheckout       ActivityType = "checkout"
)

const (
	usernameSuffixMin = 1000
	usernameSuffixMax = 9999
	userAgentMaxBuild = 100
)

var (
	userStatuses  = []UserStatus{StatusActive, StatusInactive, StatusSuspended}
	activityTypes = []ActivityType{
		ActivityLogin,
		ActivityLogout,
		ActivityProfileUpdate,
		ActivityPasswordChange,
		ActivityPurchase,
		ActivityViewProduct,
		ActivityAddToCart,
		ActivityCheckout,
	}

	nameTokens = []string{"alice", "bob", "charlie", "diana", "eve", "frank", "grace", "henry", "iris", "jack"}
	domains    = []string{"example.com", "test.com", "demo.com", "sample.org"}
	firstNames = []string{"John", "Jane", "Bob", "Alice"}
	lastNames  = []string{"Doe", "Smith", "Johnson"}
)

// UserRecord holds the generated values of a user row. ID and timestamps are assigned by the store.
type UserRecord struct {
	Username string
	Email    string
	FullName string
	Status   UserStatus
}

// UserRef identifies an existing user row.
type UserRef struct {
	ID       int64
	Username string
}

// ActivityRecord holds the generated values of an activity row.
type ActivityRecord struct {
	UserID      int64
	Type        ActivityType
	Description string
	IPAddress   string
	UserAgent   string
}

// UserStatuses returns all valid user statuses.
func UserStatuses() []UserStatus {
	return append([]UserStatus(nil), userStatuses...)
}

// ActivityTypes returns all valid activity types.
func ActivityTypes() []ActivityType {
	return append([]ActivityType(nil), activityTypes...)
}

// GenerateUser returns a randomized user with a username of the form <name>_<NNNN>.
func GenerateUser() UserRecord {
	username := fmt.Sprintf("%s_%d", lo.Sample(nameTokens), randomInt(usernameSuffixMin, usernameSuffixMax))

	return UserRecord{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, lo.Sample(domains)),
		FullName: fmt.Sprintf("%s %s", lo.Sample(firstNames), lo.Sample(lastNames)),
		Status:   GenerateStatus(),
	}
}

// GenerateStatus returns a uniformly chosen user status.
func GenerateStatus() UserStatus {
	return lo.Sample(userStatuses)
}

// GenerateActivity returns a randomized activity owned by userID.
func GenerateActivity(userID int64) ActivityRecord {
	activityType := lo.Sample(activityTypes)

	return ActivityRecord{
		UserID:      userID,
		Type:        activityType,
		Description: fmt.Sprintf("User performed %s", activityType),
		IPAddress: fmt.Sprintf(
			"%d.%d.%d.%d",
			randomInt(10, 192), randomInt(0, 255), randomInt(0, 255), randomInt(1, 254),
		),
		UserAgent: fmt.Sprintf("Mozilla/5.0 Test/%d", randomInt(1, userAgentMaxBuild)),
	}
}

// randomInt returns a value in the closed range [low, high].
func randomInt(low, high int) int {
	return low + rand.IntN(high-low+1) //nolint:gosec // synthetic data, math/rand is sufficient
}
