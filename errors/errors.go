package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrMissingToken        = fmt.Errorf("missing credential token")
	ErrInvalidToken        = fmt.Errorf("invalid or expired token")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrInvalidPassword     = fmt.Errorf("password does not meet complexity rules")
	ErrUserAlreadyExists   = fmt.Errorf("user already exists")
	ErrUserNotFound        = fmt.Errorf("user not found")
	ErrTokenGeneration     = fmt.Errorf("token generation failed")
	ErrRoomNotFound        = fmt.Errorf("room not found")
	ErrNotRoomMember       = fmt.Errorf("user is not a member of the room")
	ErrNoReceivers         = fmt.Errorf("no receivers in room")
	ErrEmptyMessage        = fmt.Errorf("message text is empty")
	ErrMessageTooLong      = fmt.Errorf("message text exceeds the size limit")
	ErrMissingRoomID       = fmt.Errorf("room id is required")
	ErrUnsupportedLanguage = fmt.Errorf("unsupported language")
	ErrTranslationTimeout  = fmt.Errorf("translation timeout")
	ErrTranslationBackend  = fmt.Errorf("translation backend failure")
)
