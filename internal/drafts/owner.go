package drafts

import "fmt"

const keyPrefix = "draft:"

const (
	scopeUser = "user"
	scopeAnon = "anon"
)

// Owner tags who a draft belongs to: an authenticated user id or an
// anonymous per-device id. All read paths match on the tag, never on key
// string conventions.
type Owner struct {
	userID   int
	deviceID string
}

func Authenticated(userID int) Owner {
	return Owner{userID: userID}
}

func Anonymous(deviceID string) Owner {
	return Owner{deviceID: deviceID}
}

func (o Owner) IsAnonymous() bool {
	return o.userID == 0
}

func (o Owner) scope() string {
	if o.IsAnonymous() {
		return scopeAnon
	}
	return scopeUser
}

func (o Owner) key() string {
	if o.IsAnonymous() {
		return fmt.Sprintf("%sanon:%s", keyPrefix, o.deviceID)
	}
	return fmt.Sprintf("%s%d", keyPrefix, o.userID)
}
