package producer_test

import (
	"net"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

var usernamePattern = regexp.MustCompile(`^(alice|bob|charlie|diana|eve|frank|grace|henry|iris|jack)_[1-9][0-9]{3}$`)

func Test_GenerateUser_ProducesWellFormedValues(t *testing.T) {
	for range 200 {
		user := producer.GenerateUser()

		assert.Regexp(t, usernamePattern, user.Username)

		local, domain, found := strings.Cut(user.Email, "@")
		require.True(t, found, "email must contain @: %s", user.Email)
		assert.Equal(t, user.Username, local, "email local part must be the username")
		assert.Contains(t, []string{"example.com", "test.com", "demo.com", "sample.org"}, domain)

		names := strings.Split(user.FullName, " ")
		require.Len(t, names, 2, "full name must be first and last name")
		assert.Contains(t, []string{"John", "Jane", "Bob", "Alice"}, names[0])
		assert.Contains(t, []string{"Doe", "Smith", "Johnson"}, names[1])

		assert.Contains(t, producer.UserStatuses(), user.Status)
	}
}

func Test_GenerateActivity_ProducesWellFormedValues(t *testing.T) {
	for range 200 {
		activity := producer.GenerateActivity(42)

		assert.Equal(t, int64(42), activity.UserID)
		assert.Contains(t, producer.ActivityTypes(), activity.Type)
		assert.Equal(t, "User performed "+string(activity.Type), activity.Description)

		ip := net.ParseIP(activity.IPAddress).To4()
		require.NotNil(t, ip, "invalid IPv4 address: %s", activity.IPAddress)
		assert.GreaterOrEqual(t, int(ip[0]), 10)
		assert.LessOrEqual(t, int(ip[0]), 192)
		assert.GreaterOrEqual(t, int(ip[3]), 1)
		assert.LessOrEqual(t, int(ip[3]), 254)

		build, found := strings.CutPrefix(activity.UserAgent, "Mozilla/5.0 Test/")
		require.True(t, found, "unexpected user agent: %s", activity.UserAgent)
		n, err := strconv.Atoi(build)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 100)
	}
}

func Test_GenerateStatus_CoversAllStatuses(t *testing.T) {
	seen := map[producer.UserStatus]bool{}
	for range 500 {
		seen[producer.GenerateStatus()] = true
	}

	assert.Len(t, seen, 3)
}

func Test_UserStatuses_ReturnsCopy(t *testing.T) {
	statuses := producer.UserStatuses()
	statuses[0] = "tampered"

	assert.Equal(t, producer.StatusActive, producer.UserStatuses()[0])
	assert.Len(t, producer.ActivityTypes(), 8)
}
