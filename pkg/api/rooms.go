package api

// Роли участников комнаты
const (
	RoleNotary = "notary"
	RoleClient = "client"
)

// CreateRoomRequest представляет запрос на создание комнаты нотариальной
// сессии. Создатель генерирует соль и выводит access_key из кода доступа
// локально; сам код доступа на relay не передается.
type CreateRoomRequest struct {
	Name           string `json:"name"`
	NotaryName     string `json:"notary_name"`
	AccessKey      string `json:"access_key"`    // base64
	PasscodeSalt   string `json:"passcode_salt"` // base64
	AttachmentUUID string `json:"attachment_uuid"`
}

// CreateRoomResponse ответ на создание комнаты.
// Token выдается создателю с ролью notary.
type CreateRoomResponse struct {
	RoomID      string `json:"room_id"`
	SubmitterID string `json:"submitter_id"`
	Token       string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"` // секунды
}

// RoomSaltResponse соль комнаты для клиентской деривации access_key
type RoomSaltResponse struct {
	RoomName     string `json:"room_name"`
	PasscodeSalt string `json:"passcode_salt"` // base64
}

// JoinRoomRequest запрос на подключение к существующей комнате.
// AccessKey выводится из кода доступа и соли комнаты на стороне клиента
type JoinRoomRequest struct {
	AccessKey   string `json:"access_key"` // base64
	DisplayName string `json:"display_name"`
}

// JoinRoomResponse ответ на подключение. Token выдается с ролью client.
type JoinRoomResponse struct {
	RoomName       string `json:"room_name"`
	SubmitterID    string `json:"submitter_id"`
	Token          string `json:"token"`
	AttachmentUUID string `json:"attachment_uuid"`
	ExpiresIn      int64  `json:"expires_in"`
}

// Participant участник комнаты
type Participant struct {
	SubmitterID string `json:"submitter_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

// PresenceResponse список участников комнаты, находящихся онлайн
type PresenceResponse struct {
	Participants []Participant `json:"participants"`
}

// ErrorResponse стандартный формат ошибки API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
