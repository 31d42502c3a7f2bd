// Package types holds the small interfaces shared between the server,
// the room layer and the handlers, breaking the import cycles between
// them.
package types

import (
	"github.com/palemoky/bezigue/internal/protocol"
)

// ServerInterface is the part of the server the handlers need.
type ServerInterface interface {
	GetOnlineCount() int
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
}

// ClientInterface is one connected player.
type ClientInterface interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}
