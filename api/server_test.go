package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lingualink/domain/chat"
	apperrors "lingualink/errors"
	"lingualink/mocks"
	"lingualink/repositories"
	"lingualink/services"
)

type apiFixture struct {
	auth  *mocks.MockIAuthService
	users *mocks.MockIUserService
	chat  *mocks.MockIChatService
	relay *mocks.MockIRelayService
	mux   *http.ServeMux
}

func newAPIFixture(t *testing.T) *apiFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &apiFixture{
		auth:  mocks.NewMockIAuthService(ctrl),
		users: mocks.NewMockIUserService(ctrl),
		chat:  mocks.NewMockIChatService(ctrl),
		relay: mocks.NewMockIRelayService(ctrl),
	}
	server := NewServer(slog.Default(), f.auth, f.users, f.chat, f.relay, nil, nil)
	f.mux = server.Routes()
	return f
}

func (f *apiFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) allowUser(user repositories.User, token string) {
	f.auth.EXPECT().Authenticate(token).Return(user, nil).AnyTimes()
}

func TestServer_Register(t *testing.T) {
	t.Run("should create the account", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)
		user := repositories.User{ID: uuid.New(), Email: "a@b.c", Username: "alice", Language: "en"}

		f.auth.EXPECT().
			Register("a@b.c", "alice", "ComplexPass123!", "en").
			Return(services.Account{User: user, Token: "tok"}, nil)

		rec := f.do(http.MethodPost, "/auth/register", "",
			`{"email":"a@b.c","username":"alice","password":"ComplexPass123!","language":"en"}`)

		req.Equal(http.StatusCreated, rec.Code)
		var body accountResponse
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		req.Equal("tok", body.Token)
		req.Equal("alice", body.User.Username)
	})

	t.Run("should report duplicates as a conflict", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)

		f.auth.EXPECT().
			Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(services.Account{}, apperrors.ErrUserAlreadyExists)

		rec := f.do(http.MethodPost, "/auth/register", "",
			`{"email":"a@b.c","username":"alice","password":"ComplexPass123!","language":"en"}`)

		req.Equal(http.StatusConflict, rec.Code)
	})
}

func TestServer_Login(t *testing.T) {
	req := require.New(t)
	f := newAPIFixture(t)

	f.auth.EXPECT().
		Login("a@b.c", "wrong").
		Return(services.Account{}, apperrors.ErrInvalidCredentials)

	rec := f.do(http.MethodPost, "/auth/login", "", `{"email":"a@b.c","password":"wrong"}`)

	req.Equal(http.StatusUnauthorized, rec.Code)
}

func TestServer_AuthMiddleware(t *testing.T) {
	t.Run("should require a bearer token", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)

		rec := f.do(http.MethodGet, "/chat/rooms", "", "")

		req.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject an invalid token", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)
		f.auth.EXPECT().Authenticate("bogus").Return(repositories.User{}, apperrors.ErrInvalidToken)

		rec := f.do(http.MethodGet, "/chat/rooms", "bogus", "")

		req.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func TestServer_Rooms(t *testing.T) {
	user := repositories.User{ID: uuid.New(), Username: "alice"}

	t.Run("should open a room", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)
		f.allowUser(user, "tok")
		other := uuid.New()
		room := chat.Room{ID: uuid.New()}

		f.chat.EXPECT().OpenRoom(user.ID, []uuid.UUID{other}).Return(room, nil)

		rec := f.do(http.MethodPost, "/chat/rooms", "tok", `{"memberIds":["`+other.String()+`"]}`)

		req.Equal(http.StatusCreated, rec.Code)
	})

	t.Run("should refuse history for non-members", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)
		f.allowUser(user, "tok")
		roomID := uuid.New()

		f.chat.EXPECT().
			GetMessages(chat.GetMessagesCommand{Room: roomID, ViewerID: user.ID}).
			Return(nil, nil, apperrors.ErrNotRoomMember)

		rec := f.do(http.MethodGet, "/chat/rooms/"+roomID.String()+"/messages", "tok", "")

		req.Equal(http.StatusForbidden, rec.Code)
	})

	t.Run("should page history with a cursor", func(t *testing.T) {
		req := require.New(t)
		f := newAPIFixture(t)
		f.allowUser(user, "tok")
		roomID := uuid.New()
		next := "cursor-2"

		f.chat.EXPECT().
			GetMessages(gomock.Any()).
			DoAndReturn(func(cmd chat.GetMessagesCommand) ([]chat.Message, *string, error) {
				req.NotNil(cmd.Cursor)
				req.Equal("cursor-1", *cmd.Cursor)
				return []chat.Message{{ID: uuid.New(), RecipientID: user.ID}}, &next, nil
			})

		rec := f.do(http.MethodGet, "/chat/rooms/"+roomID.String()+"/messages?cursor=cursor-1", "tok", "")

		req.Equal(http.StatusOK, rec.Code)
		var body struct {
			Messages   []chat.Message `json:"messages"`
			NextCursor string         `json:"nextCursor"`
		}
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		req.Len(body.Messages, 1)
		req.Equal("cursor-2", body.NextCursor)
	})
}

func TestServer_SendMessageFallback(t *testing.T) {
	req := require.New(t)
	f := newAPIFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	f.allowUser(user, "tok")
	roomID := uuid.New()
	ack := chat.Message{ID: uuid.New(), RoomID: roomID, SenderID: user.ID, Text: "hello"}

	f.relay.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, cmd chat.SendMessageCommand) (chat.Message, error) {
			req.Equal(roomID, cmd.Room)
			req.Equal("hello", cmd.Text)
			return ack, nil
		})

	rec := f.do(http.MethodPost, "/chat/rooms/"+roomID.String()+"/messages", "tok", `{"text":"hello"}`)

	req.Equal(http.StatusCreated, rec.Code)
}

func TestServer_UpdateLanguage(t *testing.T) {
	req := require.New(t)
	f := newAPIFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice", Language: "en"}
	f.allowUser(user, "tok")

	f.users.EXPECT().
		UpdateLanguage(user.ID, "xx").
		Return(repositories.User{}, apperrors.ErrUnsupportedLanguage)

	rec := f.do(http.MethodPatch, "/users/language", "tok", `{"language":"xx"}`)

	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestServer_SearchUsers(t *testing.T) {
	req := require.New(t)
	f := newAPIFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	f.allowUser(user, "tok")

	f.users.EXPECT().
		SearchUsers("bo", user.ID).
		Return([]services.PublicUser{{ID: uuid.New(), Username: "bob"}}, nil)

	rec := f.do(http.MethodGet, "/users/search?q=bo", "tok", "")

	req.Equal(http.StatusOK, rec.Code)
	var body struct {
		Users []services.PublicUser `json:"users"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Len(body.Users, 1)
}

func TestServer_Health(t *testing.T) {
	req := require.New(t)
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")

	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), "ok")
}
