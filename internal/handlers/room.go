package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
	"presentation-service/internal/telemetry"
)

// RoomHandler manages room endpoints.
type RoomHandler struct {
	roomRepo repositories.RoomRepository
	userRepo repositories.UserRepository
	audit    *telemetry.AuditEmitter
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(roomRepo repositories.RoomRepository, userRepo repositories.UserRepository, audit *telemetry.AuditEmitter) *RoomHandler {
	return &RoomHandler{roomRepo: roomRepo, userRepo: userRepo, audit: audit}
}

// Create handles POST /api/room/create.
func (h *RoomHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	room, err := h.roomRepo.CreateRoom(c.Request.Context(), c.GetInt("userID"), req.Name, uuid.NewString())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not create room"))
		return
	}

	h.emitAudit(c, "INFO", "Room created")
	c.JSON(http.StatusOK, models.OK("Create room successfully", room))
}

// Update handles PUT /api/room/update. Only the owner may change a room.
func (h *RoomHandler) Update(c *gin.Context) {
	var req struct {
		ID int `json:"id" binding:"required"`
		models.RoomUpdate
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	if !h.requireOwner(c, req.ID) {
		return
	}

	room, err := h.roomRepo.UpdateRoom(c.Request.Context(), req.ID, req.RoomUpdate)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Room not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not update room"))
		return
	}

	h.emitAudit(c, "INFO", "Room updated")
	c.JSON(http.StatusOK, models.OK("Update room successfully", room))
}

// AddUser handles POST /api/room/add-user.
func (h *RoomHandler) AddUser(c *gin.Context) {
	var req struct {
		RoomID    int    `json:"room_id" binding:"required"`
		UserEmail string `json:"user_email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	member, err := h.userRepo.GetUserByEmail(c.Request.Context(), req.UserEmail)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, models.Err("User does not exist"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not add user"))
		return
	}

	room, err := h.roomRepo.GetRoom(c.Request.Context(), req.RoomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Room not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not add user"))
		return
	}

	if room.OwnerID == member.ID {
		c.JSON(http.StatusBadRequest, models.Err("User is already in this room!"))
		return
	}

	err = h.roomRepo.AddMember(c.Request.Context(), req.RoomID, member.ID, models.MemberRoleMember)
	if errors.Is(err, repositories.ErrAlreadyInRoom) {
		c.JSON(http.StatusBadRequest, models.Err("User is already in this room!"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not add user"))
		return
	}

	h.emitAudit(c, "INFO", "User added to room")
	c.JSON(http.StatusOK, models.OK("Add user to room successfully", nil))
}

// ChangeRole handles POST /api/room/role. Only the owner may promote a
// member to co-owner or demote a co-owner back.
func (h *RoomHandler) ChangeRole(c *gin.Context) {
	var req struct {
		RoomID    int  `json:"room_id" binding:"required"`
		MemberID  int  `json:"member_id" binding:"required"`
		IsUpgrade bool `json:"is_upgrade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	if !h.requireOwner(c, req.RoomID) {
		return
	}

	role := models.MemberRoleMember
	message := "Downgrade role successfully"
	if req.IsUpgrade {
		role = models.MemberRoleCoOwner
		message = "Upgrade role successfully"
	}

	err := h.roomRepo.SetMemberRole(c.Request.Context(), req.RoomID, req.MemberID, role)
	if errors.Is(err, repositories.ErrNotInRoom) {
		c.JSON(http.StatusNotFound, models.Err("User is not in this room"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not change role"))
		return
	}

	h.emitAudit(c, "INFO", "Room role changed")
	c.JSON(http.StatusOK, models.OK(message, nil))
}

// RemoveUser handles POST /api/room/remove-user. Owner only.
func (h *RoomHandler) RemoveUser(c *gin.Context) {
	var req struct {
		RoomID    int    `json:"room_id" binding:"required"`
		UserEmail string `json:"user_email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	if !h.requireOwner(c, req.RoomID) {
		return
	}

	member, err := h.userRepo.GetUserByEmail(c.Request.Context(), req.UserEmail)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, models.Err("User does not exist"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not remove user"))
		return
	}

	err = h.roomRepo.RemoveMember(c.Request.Context(), req.RoomID, member.ID)
	if errors.Is(err, repositories.ErrNotInRoom) {
		c.JSON(http.StatusNotFound, models.Err("User is not in this room"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not remove user"))
		return
	}

	h.emitAudit(c, "INFO", "User removed from room")
	c.JSON(http.StatusOK, models.OK("Remove user successfully", nil))
}

// Detail handles GET /api/room/detail/:room_id. Members only.
func (h *RoomHandler) Detail(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	participant, err := h.roomRepo.IsParticipant(c.Request.Context(), roomID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load room"))
		return
	}
	if !participant {
		c.JSON(http.StatusForbidden, models.Err("You are not allowed to do this"))
		return
	}

	detail, err := h.roomRepo.GetRoomDetail(c.Request.Context(), roomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Room not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load room"))
		return
	}

	detail.IsOwner = detail.OwnerID == userID
	c.JSON(http.StatusOK, models.OK("Get room successfully", detail))
}

// List handles POST /api/room/list. An empty id filter returns every room.
func (h *RoomHandler) List(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	rooms, err := h.roomRepo.ListRooms(c.Request.Context(), lo.Uniq(req.IDs))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load rooms"))
		return
	}

	userID := c.GetInt("userID")
	type roomResponse struct {
		models.Room
		IsOwner bool `json:"is_owner"`
	}
	resp := lo.Map(rooms, func(room models.Room, _ int) roomResponse {
		return roomResponse{Room: room, IsOwner: room.OwnerID == userID}
	})
	c.JSON(http.StatusOK, models.OK("Get room list successfully", resp))
}

// Delete handles DELETE /api/room/:room_id. Owner only.
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	if !h.requireOwner(c, roomID) {
		return
	}

	if err := h.roomRepo.DeleteRoom(c.Request.Context(), roomID); err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not delete room"))
		return
	}

	h.emitAudit(c, "INFO", "Room deleted")
	c.JSON(http.StatusOK, models.OK("Remove room successfully", nil))
}

// requireOwner loads the room and rejects callers other than its owner,
// writing the response itself when the check fails.
func (h *RoomHandler) requireOwner(c *gin.Context, roomID int) bool {
	room, err := h.roomRepo.GetRoom(c.Request.Context(), roomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Room not found"))
		return false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load room"))
		return false
	}
	if room.OwnerID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, models.Err("You are not allowed to do this"))
		return false
	}
	return true
}

func (h *RoomHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}

func parseRoomID(c *gin.Context) (int, bool) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Err("invalid room id"))
		return 0, false
	}
	return roomID, true
}
