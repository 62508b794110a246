package libraries

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebSocketMessageType enumerates every event type the board channel carries.
type WebSocketMessageType string

const (
	WebSocketMessageTypePing  WebSocketMessageType = "ping"
	WebSocketMessageTypePong  WebSocketMessageType = "pong"
	WebSocketMessageTypeError WebSocketMessageType = "error"

	// presence
	WebSocketMessageTypeJoinBoard   WebSocketMessageType = "join_board"
	WebSocketMessageTypeUserJoined  WebSocketMessageType = "user_joined"
	WebSocketMessageTypeUserLeft    WebSocketMessageType = "user_left"
	WebSocketMessageTypeCursorMoved WebSocketMessageType = "cursor_moved"

	// chat lifecycle
	WebSocketMessageTypeMessage       WebSocketMessageType = "chat_message"
	WebSocketMessageTypeChatResponse  WebSocketMessageType = "chat_response"
	WebSocketMessageTypeChatStarting  WebSocketMessageType = "chat_starting"
	WebSocketMessageTypeChatCompleted WebSocketMessageType = "chat_completed"

	// shape mutations
	WebSocketMessageTypeShapeCreated   WebSocketMessageType = "shape_created"
	WebSocketMessageTypeShapeUpdated   WebSocketMessageType = "shape_updated"
	WebSocketMessageTypeShapeDeleted   WebSocketMessageType = "shape_deleted"
	WebSocketMessageTypeShapeReordered WebSocketMessageType = "shape_reordered"
)

type Client struct {
	ID      string
	Name    string
	BoardID string
	Conn    *websocket.Conn
	Send    chan []byte
	once    sync.Once
}

type Hub struct {
	mu         sync.RWMutex
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
}

type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

type JoinBoardPayload struct {
	BoardId string `json:"board_id"`
	Name    string `json:"name,omitempty"`
}

type PresencePayload struct {
	BoardId  string `json:"board_id"`
	ClientId string `json:"client_id"`
	Name     string `json:"name,omitempty"`
}

type CursorPayload struct {
	BoardId  string  `json:"board_id"`
	ClientId string  `json:"client_id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type ChatMessagePayload struct {
	BoardId string `json:"board_id,omitempty"`
	Message string `json:"message"`
}

type ChatMessageResponsePayload struct {
	BoardId        string      `json:"board_id"`
	Message        string      `json:"message"`
	HumanMessageId string      `json:"human_message_id"`
	AiMessageId    string      `json:"ai_message_id"`
	Data           interface{} `json:"data,omitempty"`
}

type ShapeEventPayload struct {
	BoardId string      `json:"board_id"`
	Shape   interface{} `json:"shape,omitempty"`
	ShapeId string      `json:"shape_id,omitempty"`
	ZIndex  *int        `json:"z_index,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ID] = client
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.mu.Lock()
			if _, exists := h.Clients[client.ID]; exists {
				delete(h.Clients, client.ID)
				client.once.Do(func() {
					close(client.Send)
				})
			}
			h.mu.Unlock()
			if client.BoardID != "" {
				h.BroadcastToBoard(client.BoardID, WebSocketMessage{
					Type: WebSocketMessageTypeUserLeft,
					Data: &PresencePayload{
						BoardId:  client.BoardID,
						ClientId: client.ID,
						Name:     client.Name,
					},
				})
			}
		case message := <-h.Broadcast:
			h.mu.RLock()
			for _, client := range h.Clients {
				client.Send <- message
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) BroadcastMessage(message []byte) {
	h.Broadcast <- message
}

// BroadcastToBoard fans an event out to every client joined to the board.
func (h *Hub) BroadcastToBoard(boardID string, message WebSocketMessage) {
	bytes, err := json.Marshal(message)
	if err != nil {
		log.Println("failed to marshal board broadcast:", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.Clients {
		if client.BoardID == boardID {
			client.Send <- bytes
		}
	}
}

// BroadcastShapeEvent announces a shape mutation to everyone on the board.
func (h *Hub) BroadcastShapeEvent(boardID string, eventType WebSocketMessageType, payload *ShapeEventPayload) {
	payload.BoardId = boardID
	h.BroadcastToBoard(boardID, WebSocketMessage{
		Type: eventType,
		Data: payload,
	})
}

func (h *Hub) SendMessage(client *Client, message []byte) {
	client.Send <- message
}

// SendErrorMessage sends a standardized error message to a client
func SendErrorMessage(hub *Hub, client *Client, errorMsg string) {
	errorResp := WebSocketMessage{
		Type: WebSocketMessageTypeError,
		Data: &ChatMessagePayload{
			Message: errorMsg,
		},
	}
	errorBytes, err := json.Marshal(errorResp)
	if err != nil {
		log.Println("failed to marshal error response:", err)
		return
	}
	hub.SendMessage(client, errorBytes)
}

func sendPongMessage(hub *Hub, client *Client) {
	pongResp := WebSocketMessage{
		Type: WebSocketMessageTypePong,
	}
	pongBytes, err := json.Marshal(pongResp)
	if err != nil {
		log.Println("failed to marshal pong response:", err)
		return
	}
	hub.SendMessage(client, pongBytes)
}

// SendEventType sends a bare lifecycle event to a client
func SendEventType(hub *Hub, client *Client, eventType WebSocketMessageType) {
	eventTypeResp := WebSocketMessage{
		Type: eventType,
	}
	eventTypeBytes, err := json.Marshal(eventTypeResp)
	if err != nil {
		log.Println("failed to marshal event type response:", err)
		return
	}
	hub.SendMessage(client, eventTypeBytes)
}

// SendChatMessageResponse sends a chat message response to a client
func SendChatMessageResponse(hub *Hub, client *Client, Type WebSocketMessageType, message *ChatMessageResponsePayload) {
	chatMessageResponseResp := WebSocketMessage{
		Type: Type,
		Data: message,
	}

	chatMessageResponseBytes, err := json.Marshal(chatMessageResponseResp)
	if err != nil {
		log.Println("failed to marshal chat message response:", err)
		return
	}
	hub.SendMessage(client, chatMessageResponseBytes)
	// pacing so the client renders messages in order
	time.Sleep(50 * time.Millisecond)
}

// parseWebSocketMessage parses an incoming frame into a typed payload.
func parseWebSocketMessage(msg []byte) (*WebSocketMessage, error) {
	var rawMessage struct {
		Type WebSocketMessageType `json:"type"`
		Data json.RawMessage      `json:"data,omitempty"`
	}
	if err := json.Unmarshal(msg, &rawMessage); err != nil {
		return nil, err
	}

	message := &WebSocketMessage{
		Type: rawMessage.Type,
	}

	if len(rawMessage.Data) > 0 {
		switch rawMessage.Type {
		case WebSocketMessageTypeMessage:
			var chatPayload ChatMessagePayload
			if err := json.Unmarshal(rawMessage.Data, &chatPayload); err != nil {
				return nil, err
			}
			message.Data = &chatPayload
		case WebSocketMessageTypeJoinBoard:
			var joinPayload JoinBoardPayload
			if err := json.Unmarshal(rawMessage.Data, &joinPayload); err != nil {
				return nil, err
			}
			message.Data = &joinPayload
		case WebSocketMessageTypeCursorMoved:
			var cursorPayload CursorPayload
			if err := json.Unmarshal(rawMessage.Data, &cursorPayload); err != nil {
				return nil, err
			}
			message.Data = &cursorPayload
		default:
			var data interface{}
			if err := json.Unmarshal(rawMessage.Data, &data); err != nil {
				return nil, err
			}
			message.Data = data
		}
	}

	return message, nil
}

// ChatMessageProcessor defines an interface for processing chat messages
type ChatMessageProcessor interface {
	ProcessChatMessage(hub *Hub, client *Client, boardId string, message *ChatMessagePayload)
}

func WebSocketHandler(hub *Hub, processor ChatMessageProcessor) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.Register <- client

		// Write loop
		go func() {
			defer func() {
				hub.Unregister <- client
				conn.Close()
			}()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("write error:", err)
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}

			message, err := parseWebSocketMessage(msg)
			if err != nil {
				log.Println("failed to parse JSON:", err)
				SendErrorMessage(hub, client, "Invalid JSON format")
				continue
			}

			switch message.Type {
			case WebSocketMessageTypePing:
				sendPongMessage(hub, client)

			case WebSocketMessageTypeJoinBoard:
				joinPayload, ok := message.Data.(*JoinBoardPayload)
				if !ok || joinPayload.BoardId == "" {
					SendErrorMessage(hub, client, "Board ID is required")
					continue
				}
				client.BoardID = joinPayload.BoardId
				client.Name = joinPayload.Name
				hub.BroadcastToBoard(client.BoardID, WebSocketMessage{
					Type: WebSocketMessageTypeUserJoined,
					Data: &PresencePayload{
						BoardId:  client.BoardID,
						ClientId: client.ID,
						Name:     client.Name,
					},
				})

			case WebSocketMessageTypeCursorMoved:
				cursorPayload, ok := message.Data.(*CursorPayload)
				if !ok {
					SendErrorMessage(hub, client, "Invalid cursor payload")
					continue
				}
				if cursorPayload.BoardId == "" {
					cursorPayload.BoardId = client.BoardID
				}
				cursorPayload.ClientId = client.ID
				hub.BroadcastToBoard(cursorPayload.BoardId, WebSocketMessage{
					Type: WebSocketMessageTypeCursorMoved,
					Data: cursorPayload,
				})

			case WebSocketMessageTypeMessage:
				chatPayload, ok := message.Data.(*ChatMessagePayload)
				if !ok {
					SendErrorMessage(hub, client, "Invalid chat message payload type")
					continue
				}
				boardId := chatPayload.BoardId
				if boardId == "" {
					boardId = client.BoardID
				}
				if boardId == "" {
					SendErrorMessage(hub, client, "Board ID is required")
					continue
				}
				go processor.ProcessChatMessage(hub, client, boardId, chatPayload)

			default:
				SendErrorMessage(hub, client, "Type is invalid or not provided")
			}
		}

		hub.Unregister <- client
		conn.Close()
	})
}
