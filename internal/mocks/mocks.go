package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"presentation-service/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, name, email, passwordHash, activeCode string) (models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, activeCode)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) UpdateProfile(ctx context.Context, userID int, name, passwordHash string) (models.User, error) {
	args := m.Called(ctx, userID, name, passwordHash)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsersByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	args := m.Called(ctx, ids)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) SearchUsers(ctx context.Context, search string) ([]models.User, error) {
	args := m.Called(ctx, search)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) AdminUpdateUser(ctx context.Context, userID int, upd models.AdminUserUpdate) error {
	args := m.Called(ctx, userID, upd)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteUser(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepositoryMock) SetPassword(ctx context.Context, userID int, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *UserRepositoryMock) ActivateUser(ctx context.Context, userID int, activeCode string) error {
	args := m.Called(ctx, userID, activeCode)
	return args.Error(0)
}

type RoomRepositoryMock struct {
	mock.Mock
}

func (m *RoomRepositoryMock) CreateRoom(ctx context.Context, ownerID int, name, inviteCode string) (models.Room, error) {
	args := m.Called(ctx, ownerID, name, inviteCode)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	args := m.Called(ctx, roomID)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) GetRoomDetail(ctx context.Context, roomID int) (models.RoomDetail, error) {
	args := m.Called(ctx, roomID)
	var detail models.RoomDetail
	if val := args.Get(0); val != nil {
		detail = val.(models.RoomDetail)
	}
	return detail, args.Error(1)
}

func (m *RoomRepositoryMock) UpdateRoom(ctx context.Context, roomID int, upd models.RoomUpdate) (models.Room, error) {
	args := m.Called(ctx, roomID, upd)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) ListRooms(ctx context.Context, ids []int) ([]models.Room, error) {
	args := m.Called(ctx, ids)
	var rooms []models.Room
	if val := args.Get(0); val != nil {
		rooms = val.([]models.Room)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepositoryMock) DeleteRoom(ctx context.Context, roomID int) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *RoomRepositoryMock) AddMember(ctx context.Context, roomID, userID int, role string) error {
	args := m.Called(ctx, roomID, userID, role)
	return args.Error(0)
}

func (m *RoomRepositoryMock) RemoveMember(ctx context.Context, roomID, userID int) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}

func (m *RoomRepositoryMock) SetMemberRole(ctx context.Context, roomID, userID int, role string) error {
	args := m.Called(ctx, roomID, userID, role)
	return args.Error(0)
}

func (m *RoomRepositoryMock) IsParticipant(ctx context.Context, roomID, userID int) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

type DocumentRepositoryMock struct {
	mock.Mock
}

func (m *DocumentRepositoryMock) CreateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	args := m.Called(ctx, doc)
	var created models.Document
	if val := args.Get(0); val != nil {
		created = val.(models.Document)
	}
	return created, args.Error(1)
}

func (m *DocumentRepositoryMock) ListDocuments(ctx context.Context, userID int, presIDs []string) ([]models.Document, error) {
	args := m.Called(ctx, userID, presIDs)
	var docs []models.Document
	if val := args.Get(0); val != nil {
		docs = val.([]models.Document)
	}
	return docs, args.Error(1)
}

func (m *DocumentRepositoryMock) UpdateDocument(ctx context.Context, presID string, userID int, upd models.DocumentUpdate) error {
	args := m.Called(ctx, presID, userID, upd)
	return args.Error(0)
}

func (m *DocumentRepositoryMock) DeleteDocument(ctx context.Context, presID string, userID int) error {
	args := m.Called(ctx, presID, userID)
	return args.Error(0)
}

type RecordingRepositoryMock struct {
	mock.Mock
}

func (m *RecordingRepositoryMock) CreateRecording(ctx context.Context, rec models.Recording) (models.Recording, error) {
	args := m.Called(ctx, rec)
	var created models.Recording
	if val := args.Get(0); val != nil {
		created = val.(models.Recording)
	}
	return created, args.Error(1)
}

func (m *RecordingRepositoryMock) ListRecordings(ctx context.Context, meetingID int, publishedOnly bool) ([]models.Recording, error) {
	args := m.Called(ctx, meetingID, publishedOnly)
	var recs []models.Recording
	if val := args.Get(0); val != nil {
		recs = val.([]models.Recording)
	}
	return recs, args.Error(1)
}

func (m *RecordingRepositoryMock) UpdateRecording(ctx context.Context, recordID string, upd models.RecordingUpdate) error {
	args := m.Called(ctx, recordID, upd)
	return args.Error(0)
}

func (m *RecordingRepositoryMock) SoftDeleteRecording(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

type PresentationRepositoryMock struct {
	mock.Mock
}

func (m *PresentationRepositoryMock) UpdateByID(ctx context.Context, presentationID string, data json.RawMessage) error {
	args := m.Called(ctx, presentationID, data)
	return args.Error(0)
}

func (m *PresentationRepositoryMock) UpdateHistory(ctx context.Context, presentationID string, history json.RawMessage) error {
	args := m.Called(ctx, presentationID, history)
	return args.Error(0)
}

type QuestionRepositoryMock struct {
	mock.Mock
}

func (m *QuestionRepositoryMock) CreateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	args := m.Called(ctx, q)
	var created models.Question
	if val := args.Get(0); val != nil {
		created = val.(models.Question)
	}
	return created, args.Error(1)
}

func (m *QuestionRepositoryMock) UpdateVote(ctx context.Context, questionID, vote int) (models.Question, error) {
	args := m.Called(ctx, questionID, vote)
	var q models.Question
	if val := args.Get(0); val != nil {
		q = val.(models.Question)
	}
	return q, args.Error(1)
}

func (m *QuestionRepositoryMock) DeleteByPresentation(ctx context.Context, presentationID string) error {
	args := m.Called(ctx, presentationID)
	return args.Error(0)
}
