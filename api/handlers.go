package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"lingualink/domain/chat"
	apperrors "lingualink/errors"
	"lingualink/repositories"
	"lingualink/services"
)

const defaultSearchLimit = 20

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Language string `json:"language"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	User  publicUser `json:"user"`
	Token string     `json:"token"`
}

type publicUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Language string    `json:"language"`
}

func toPublicUser(u repositories.User) publicUser {
	return publicUser{ID: u.ID, Email: u.Email, Username: u.Username, Language: u.Language}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	account, err := s.authService.Register(req.Email, req.Username, req.Password, req.Language)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, accountResponse{User: toPublicUser(account.User), Token: string(account.Token)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	account, err := s.authService.Login(req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, accountResponse{User: toPublicUser(account.User), Token: string(account.Token)})
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeJSON(w, http.StatusOK, map[string]any{"users": []services.PublicUser{}})
		return
	}
	users, err := s.userService.SearchUsers(query, requestUser(r).ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type updateLanguageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleUpdateLanguage(w http.ResponseWriter, r *http.Request) {
	var req updateLanguageRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	user, err := s.userService.UpdateLanguage(requestUser(r).ID, req.Language)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"user": toPublicUser(user)})
}

type openRoomRequest struct {
	MemberIDs []uuid.UUID `json:"memberIds"`
}

func (s *Server) handleOpenRoom(w http.ResponseWriter, r *http.Request) {
	var req openRoomRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	room, err := s.chatService.OpenRoom(requestUser(r).ID, req.MemberIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"room": room})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	previews, err := s.chatService.ListRooms(requestUser(r).ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"rooms": previews})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, apperrors.ErrMissingRoomID)
		return
	}
	room, err := s.chatService.GetRoom(requestUser(r).ID, roomID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, apperrors.ErrMissingRoomID)
		return
	}
	var cursor *string
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor = &raw
	}
	messages, next, err := s.chatService.GetMessages(chat.GetMessagesCommand{
		Room:     roomID,
		ViewerID: requestUser(r).ID,
		Cursor:   cursor,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	body := map[string]any{"messages": messages}
	if next != nil {
		body["nextCursor"] = *next
	}
	s.writeJSON(w, http.StatusOK, body)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// handleSendMessage is the HTTP fallback for clients without a socket. The
// same relay pipeline runs, so connected members still get their variants
// pushed live.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, apperrors.ErrMissingRoomID)
		return
	}
	var req sendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
		return
	}
	message, err := s.relay.Send(r.Context(), chat.SendMessageCommand{
		Room:      roomID,
		SenderID:  requestUser(r).ID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"message": message})
}

func (s *Server) handleSearchMessages(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, apperrors.ErrMissingRoomID)
		return
	}
	terms := r.URL.Query().Get("q")
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	hits, total, err := s.chatService.SearchMessages(r.Context(), requestUser(r).ID, roomID, terms, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hits": hits, "total": total})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.monitor == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.monitor.Snapshot())
}
