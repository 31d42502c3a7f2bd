package codec

import (
	"sync"

	"github.com/palemoky/bezigue/internal/protocol"
)

// messagePool recycles Message values on the server read path.
var messagePool = sync.Pool{
	New: func() any {
		return &protocol.Message{}
	},
}

// GetMessage retrieves a Message from the pool.
func GetMessage() *protocol.Message {
	return messagePool.Get().(*protocol.Message)
}

// PutMessage returns a Message to the pool. Fields are reset so the
// pool does not hold payload references.
func PutMessage(msg *protocol.Message) {
	if msg == nil {
		return
	}
	msg.Type = ""
	msg.Payload = nil
	messagePool.Put(msg)
}
