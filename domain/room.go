package domain

import "fmt"

// RoomKey names the delivery target owning every live session of one identity.
type RoomKey string

func RoomKeyFor(id UserID) RoomKey {
	return RoomKey(fmt.Sprintf("identity:%d", id))
}
