package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apperrors "lingualink/errors"
	"lingualink/observability"
	"lingualink/repositories"
	"lingualink/services"
)

type contextKey string

const userContextKey contextKey = "user"

// Server is the REST facade over the chat services. The websocket endpoint
// is mounted next to it so one listener serves both surfaces.
type Server struct {
	log         *slog.Logger
	authService services.IAuthService
	userService services.IUserService
	chatService services.IChatService
	relay       services.IRelayService
	monitor     *observability.Monitor
	wsHandler   http.Handler
}

func NewServer(
	log *slog.Logger,
	auth services.IAuthService,
	users services.IUserService,
	chat services.IChatService,
	relay services.IRelayService,
	monitor *observability.Monitor,
	wsHandler http.Handler,
) *Server {
	return &Server{
		log:         log,
		authService: auth,
		userService: users,
		chatService: chat,
		relay:       relay,
		monitor:     monitor,
		wsHandler:   wsHandler,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("GET /users/search", s.withAuth(s.handleSearchUsers))
	mux.HandleFunc("PATCH /users/language", s.withAuth(s.handleUpdateLanguage))

	mux.HandleFunc("POST /chat/rooms", s.withAuth(s.handleOpenRoom))
	mux.HandleFunc("GET /chat/rooms", s.withAuth(s.handleListRooms))
	mux.HandleFunc("GET /chat/rooms/{id}", s.withAuth(s.handleGetRoom))
	mux.HandleFunc("GET /chat/rooms/{id}/messages", s.withAuth(s.handleListMessages))
	mux.HandleFunc("POST /chat/rooms/{id}/messages", s.withAuth(s.handleSendMessage))
	mux.HandleFunc("GET /chat/rooms/{id}/search", s.withAuth(s.handleSearchMessages))

	if s.wsHandler != nil {
		mux.Handle("GET /chat", s.wsHandler)
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)

	return mux
}

// withAuth resolves the bearer token and stores the user in the request
// context. Websocket upgrades carry their token separately as a query
// parameter and do not pass through here.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			s.writeError(w, apperrors.ErrMissingToken)
			return
		}
		user, err := s.authService.Authenticate(strings.TrimSpace(token))
		if err != nil {
			s.writeError(w, apperrors.ErrInvalidToken)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

func requestUser(r *http.Request) repositories.User {
	user, _ := r.Context().Value(userContextKey).(repositories.User)
	return user
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Encoding response failed", "err", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps sentinel errors to HTTP status codes. Unknown errors are
// logged and reported as a plain 500 without internals.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, apperrors.ErrMissingToken), errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrRoomNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrNotRoomMember):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, apperrors.ErrInvalidPassword), errors.Is(err, apperrors.ErrUnsupportedLanguage),
		errors.Is(err, apperrors.ErrEmptyMessage), errors.Is(err, apperrors.ErrMessageTooLong),
		errors.Is(err, apperrors.ErrMissingRoomID), errors.Is(err, apperrors.ErrNoReceivers):
		status, message = http.StatusBadRequest, err.Error()
	default:
		s.log.Error("Request failed", "err", err)
	}

	s.writeJSON(w, status, errorBody{Error: message})
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
