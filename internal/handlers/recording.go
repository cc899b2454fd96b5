package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
	"presentation-service/internal/telemetry"
)

// RecordingHandler manages meeting recording endpoints.
type RecordingHandler struct {
	recRepo  repositories.RecordingRepository
	roomRepo repositories.RoomRepository
	audit    *telemetry.AuditEmitter
}

// NewRecordingHandler constructs a RecordingHandler.
func NewRecordingHandler(recRepo repositories.RecordingRepository, roomRepo repositories.RoomRepository, audit *telemetry.AuditEmitter) *RecordingHandler {
	return &RecordingHandler{recRepo: recRepo, roomRepo: roomRepo, audit: audit}
}

// Create handles POST /api/record/create.
func (h *RecordingHandler) Create(c *gin.Context) {
	var req struct {
		RecordID     string `json:"record_id" binding:"required"`
		MeetingID    int    `json:"meeting_id" binding:"required"`
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		PlaybackURL  string `json:"playback_url"`
		Name         string `json:"name"`
		RecordName   string `json:"record_name"`
		Participants int    `json:"participants"`
		Published    bool   `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	rec, err := h.recRepo.CreateRecording(c.Request.Context(), models.Recording{
		RecordID:     req.RecordID,
		MeetingID:    req.MeetingID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PlaybackURL:  req.PlaybackURL,
		Name:         req.Name,
		RecordName:   req.RecordName,
		Participants: req.Participants,
		Published:    req.Published,
	})
	if errors.Is(err, repositories.ErrRecordingExists) {
		c.JSON(http.StatusBadRequest, models.Err("This recording already exists"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not create recording"))
		return
	}

	h.emitAudit(c, "INFO", "Recording created")
	c.JSON(http.StatusOK, models.OK("Create recording successfully", rec))
}

// List handles POST /api/record/list. Non-owners only see published
// recordings.
func (h *RecordingHandler) List(c *gin.Context) {
	var req struct {
		MeetingID int `json:"meeting_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	room, err := h.roomRepo.GetRoom(c.Request.Context(), req.MeetingID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Room not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load recordings"))
		return
	}

	isOwner := room.OwnerID == c.GetInt("userID")
	recs, err := h.recRepo.ListRecordings(c.Request.Context(), req.MeetingID, !isOwner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load recordings"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Get recordings successfully", recs))
}

// Update handles PUT /api/record/update. Room owner only.
func (h *RecordingHandler) Update(c *gin.Context) {
	var req struct {
		RoomID   int    `json:"room_id" binding:"required"`
		RecordID string `json:"record_id" binding:"required"`
		models.RecordingUpdate
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	if !h.requireRoomOwner(c, req.RoomID) {
		return
	}

	err := h.recRepo.UpdateRecording(c.Request.Context(), req.RecordID, req.RecordingUpdate)
	if errors.Is(err, repositories.ErrRecordingNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Recording not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not update recording"))
		return
	}

	h.emitAudit(c, "INFO", "Recording updated")
	c.JSON(http.StatusOK, models.OK("Update recording successfully", nil))
}

// Delete handles DELETE /api/record/:room_id/:record_id. Room owner only;
// the recording is soft deleted.
func (h *RecordingHandler) Delete(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Err("invalid room id"))
		return
	}

	if !h.requireRoomOwner(c, roomID) {
		return
	}

	err = h.recRepo.SoftDeleteRecording(c.Request.Context(), c.Param("record_id"))
	if errors.Is(err, repositories.ErrRecordingNotFound) {
		c.JSON(http.StatusNotFound, models.Err("Recording not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not delete recording"))
		return
	}

	h.emitAudit(c, "INFO", "Recording deleted")
	c.JSON(http.StatusOK, models.OK("Recording deleted successfully", nil))
}

func (h *RecordingHandler) requireRoomOwner(c *gin.Context, roomID int) bool {
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
		c.JSON(http.StatusForbidden, models.Err("You are not allowed"))
		return false
	}
	return true
}

func (h *RecordingHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
