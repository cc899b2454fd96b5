package models

import "time"

// Member roles inside a room. The owner is stored on the room itself.
const (
	MemberRoleCoOwner = "CO_OWNER"
	MemberRoleMember  = "MEMBER"
)

// Room represents a named group of users around a presentation.
type Room struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	OwnerID      int       `db:"owner_id" json:"owner_id"`
	InviteCode   string    `db:"invite_code" json:"invite_code"`
	MeetingInfo  string    `db:"meeting_info" json:"meeting_info"`
	Presentation string    `db:"presentation" json:"presentation"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RoomMember links a user to a room with a role.
type RoomMember struct {
	RoomID int    `db:"room_id" json:"room_id"`
	UserID int    `db:"user_id" json:"user_id"`
	Role   string `db:"role" json:"role"`
}

// RoomDetail is the member-facing view of a room.
type RoomDetail struct {
	Room
	CoOwnerIDs []int `json:"co_owner_ids"`
	MemberIDs  []int `json:"member_ids"`
	IsOwner    bool  `json:"is_owner"`
}

// RoomUpdate carries the mutable room fields.
type RoomUpdate struct {
	Name         *string `json:"name"`
	MeetingInfo  *string `json:"meeting_info"`
	Presentation *string `json:"presentation"`
}
