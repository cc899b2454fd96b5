package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"presentation-service/internal/models"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrAlreadyInRoom = errors.New("user is already in this room")
	ErrNotInRoom     = errors.New("user is not in this room")
)

// RoomRepository abstracts room persistence.
type RoomRepository interface {
	CreateRoom(ctx context.Context, ownerID int, name, inviteCode string) (models.Room, error)
	GetRoom(ctx context.Context, roomID int) (models.Room, error)
	GetRoomDetail(ctx context.Context, roomID int) (models.RoomDetail, error)
	UpdateRoom(ctx context.Context, roomID int, upd models.RoomUpdate) (models.Room, error)
	ListRooms(ctx context.Context, ids []int) ([]models.Room, error)
	DeleteRoom(ctx context.Context, roomID int) error
	AddMember(ctx context.Context, roomID, userID int, role string) error
	RemoveMember(ctx context.Context, roomID, userID int) error
	SetMemberRole(ctx context.Context, roomID, userID int, role string) error
	IsParticipant(ctx context.Context, roomID, userID int) (bool, error)
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = `id, name, owner_id, invite_code, meeting_info, presentation, created_at`

// CreateRoom creates a room owned by the given user.
func (r *RoomRepo) CreateRoom(ctx context.Context, ownerID int, name, inviteCode string) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room,
		`INSERT INTO rooms (name, owner_id, invite_code) VALUES ($1, $2, $3) RETURNING `+roomColumns,
		name, ownerID, inviteCode)
	return room, err
}

// GetRoom fetches a single room.
func (r *RoomRepo) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room, `SELECT `+roomColumns+` FROM rooms WHERE id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// GetRoomDetail fetches a room together with its member lists.
func (r *RoomRepo) GetRoomDetail(ctx context.Context, roomID int) (models.RoomDetail, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return models.RoomDetail{}, err
	}

	var members []models.RoomMember
	if err := r.db.SelectContext(ctx, &members,
		`SELECT room_id, user_id, role FROM room_members WHERE room_id=$1 ORDER BY user_id`, roomID); err != nil {
		return models.RoomDetail{}, err
	}

	detail := models.RoomDetail{Room: room, CoOwnerIDs: []int{}, MemberIDs: []int{}}
	for _, m := range members {
		if m.Role == models.MemberRoleCoOwner {
			detail.CoOwnerIDs = append(detail.CoOwnerIDs, m.UserID)
		} else {
			detail.MemberIDs = append(detail.MemberIDs, m.UserID)
		}
	}
	return detail, nil
}

// UpdateRoom applies partial updates to a room.
func (r *RoomRepo) UpdateRoom(ctx context.Context, roomID int, upd models.RoomUpdate) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room,
		`UPDATE rooms SET
            name=COALESCE($2, name),
            meeting_info=COALESCE($3, meeting_info),
            presentation=COALESCE($4, presentation)
         WHERE id=$1 RETURNING `+roomColumns,
		roomID, upd.Name, upd.MeetingInfo, upd.Presentation)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// ListRooms returns the rooms matching the given ids, or every room when the
// filter is empty.
func (r *RoomRepo) ListRooms(ctx context.Context, ids []int) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT `+roomColumns+` FROM rooms WHERE cardinality($1::int[]) = 0 OR id = ANY($1) ORDER BY created_at DESC`,
		pq.Array(ids))
	return rooms, err
}

// DeleteRoom removes a room and, via cascade, its memberships.
func (r *RoomRepo) DeleteRoom(ctx context.Context, roomID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id=$1`, roomID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// AddMember adds a user to a room with the given role.
func (r *RoomRepo) AddMember(ctx context.Context, roomID, userID int, role string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO room_members (room_id, user_id, role) VALUES ($1, $2, $3)`, roomID, userID, role)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrAlreadyInRoom
	}
	return err
}

// RemoveMember removes a user from a room.
func (r *RoomRepo) RemoveMember(ctx context.Context, roomID, userID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM room_members WHERE room_id=$1 AND user_id=$2`, roomID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotInRoom
	}
	return nil
}

// SetMemberRole promotes or demotes an existing member.
func (r *RoomRepo) SetMemberRole(ctx context.Context, roomID, userID int, role string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_members SET role=$3 WHERE room_id=$1 AND user_id=$2`, roomID, userID, role)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotInRoom
	}
	return nil
}

// IsParticipant reports whether the user is the owner or any kind of member.
func (r *RoomRepo) IsParticipant(ctx context.Context, roomID, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(
            SELECT 1 FROM rooms WHERE id=$1 AND owner_id=$2
            UNION
            SELECT 1 FROM room_members WHERE room_id=$1 AND user_id=$2
         )`, roomID, userID)
	return exists, err
}
