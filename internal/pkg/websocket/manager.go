package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/constants"
	jwtpkg "github.com/piresc/kirimin/internal/pkg/jwt"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/pkg/models"
)

const writeWait = 10 * time.Second

// Client is an authenticated socket connection
type Client struct {
	UserID string
	Role   string

	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewClient wraps conn for the given identity
func NewClient(userID, role string, conn *websocket.Conn) *Client {
	return &Client{UserID: userID, Role: role, conn: conn}
}

// Send writes a single event frame; safe for concurrent use
func (cl *Client) Send(event string, data interface{}) error {
	if cl == nil || cl.conn == nil {
		return nil
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteJSON(models.WSMessage{Event: event, Data: rawData})
}

// ReadMessage blocks until the next frame from the peer
func (cl *Client) ReadMessage() ([]byte, error) {
	_, msg, err := cl.conn.ReadMessage()
	return msg, err
}

// Manager authenticates socket connections and tracks room membership
// for this instance. Rooms are local; cross-instance delivery goes
// through the fan-out bus.
type Manager struct {
	sync.RWMutex
	rooms    map[string]map[*Client]struct{}
	cfg      models.JWTConfig
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig) *Manager {
	return &Manager{
		rooms: make(map[string]map[*Client]struct{}),
		cfg:   jwtConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates, upgrades and runs handleClient until it returns.
// The client leaves every room when the connection ends.
func (m *Manager) HandleConnection(c echo.Context, handleClient func(*Client) error) error {
	claims, err := m.authenticate(c)
	if err != nil {
		return err
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	client := NewClient(claims.UserID, claims.Role, ws)
	defer m.LeaveAll(client)

	return handleClient(client)
}

// authenticate reads the token from the Authorization header or the token query param
func (m *Manager) authenticate(c echo.Context) (*jwtpkg.Claims, error) {
	token := c.QueryParam("token")
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		bearer, err := jwtpkg.BearerToken(header)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
		token = bearer
	}
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization token is required")
	}

	claims, err := jwtpkg.ValidateToken(token, m.cfg.Secret)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}

// Join adds client to room
func (m *Manager) Join(room string, client *Client) {
	m.Lock()
	defer m.Unlock()
	members, ok := m.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		m.rooms[room] = members
	}
	members[client] = struct{}{}
}

// Leave removes client from room and returns how many members remain
func (m *Manager) Leave(room string, client *Client) int {
	m.Lock()
	defer m.Unlock()
	m.leaveLocked(room, client)
	return len(m.rooms[room])
}

// LeaveAll removes client from every room it joined
func (m *Manager) LeaveAll(client *Client) {
	m.Lock()
	defer m.Unlock()
	for room := range m.rooms {
		m.leaveLocked(room, client)
	}
}

func (m *Manager) leaveLocked(room string, client *Client) {
	members, ok := m.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.rooms, room)
	}
}

// RoomSize returns the number of local members in room
func (m *Manager) RoomSize(room string) int {
	m.RLock()
	defer m.RUnlock()
	return len(m.rooms[room])
}

// Broadcast delivers event to every local member of room and returns how many received it
func (m *Manager) Broadcast(room, event string, data interface{}) int {
	m.RLock()
	members := make([]*Client, 0, len(m.rooms[room]))
	for client := range m.rooms[room] {
		members = append(members, client)
	}
	m.RUnlock()

	delivered := 0
	for _, client := range members {
		if err := client.Send(event, data); err != nil {
			logger.Warn("Error sending message to client",
				logger.String("room", room),
				logger.String("user_id", client.UserID),
				logger.Err(err))
			continue
		}
		delivered++
	}

	logger.Debug("Broadcast to room",
		logger.String("room", room),
		logger.String("event", event),
		logger.Int("delivered", delivered))
	return delivered
}

// SendErrorMessage sends an error event to a single client
func (m *Manager) SendErrorMessage(client *Client, code string, message string) error {
	return client.Send(constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// SendCategorizedError logs err and sends the client as much detail as severity allows
func (m *Manager) SendCategorizedError(client *Client, err error, code string, severity constants.ErrorSeverity) error {
	logger.Error("WebSocket operation failed",
		logger.String("user_id", client.UserID),
		logger.String("error_code", code),
		logger.String("severity", severityString(severity)),
		logger.Err(err))

	switch severity {
	case constants.ErrorSeverityClient:
		return m.SendErrorMessage(client, code, err.Error())
	case constants.ErrorSeveritySecurity:
		return m.SendErrorMessage(client, code, "Access denied")
	default:
		return m.SendErrorMessage(client, code, "Operation failed")
	}
}

func severityString(severity constants.ErrorSeverity) string {
	switch severity {
	case constants.ErrorSeverityClient:
		return "client"
	case constants.ErrorSeverityServer:
		return "server"
	case constants.ErrorSeveritySecurity:
		return "security"
	default:
		return "unknown"
	}
}

// AgentRoom returns the room name for an agent
func AgentRoom(agentID string) string {
	return fmt.Sprintf(constants.RoomAgent, agentID)
}

// TripRoom returns the room name for a trip
func TripRoom(tripID string) string {
	return fmt.Sprintf(constants.RoomTrip, tripID)
}
