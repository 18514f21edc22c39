// Package transport carries rpc frames over gorilla websockets, one binary
// message per frame.
package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait     = time.Minute
	closeTimeout = 20 * time.Second
)

type Conn struct {
	socket    *websocket.Conn
	writeLock sync.Mutex
	closeOnce sync.Once
}

func (c *Conn) Write(data []byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	return c.socket.WriteMessage(websocket.BinaryMessage, data)
}

func (c *Conn) Ping() error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	return c.socket.WriteMessage(websocket.PingMessage, nil)
}

func (c *Conn) Read() ([]byte, error) {
	_, p, err := c.socket.ReadMessage()
	return p, err
}

// Close sends a close frame carrying reason, then drops the connection.
// Later calls do nothing.
func (c *Conn) Close(reason string) {
	c.closeOnce.Do(func() {
		c.writeLock.Lock()
		c.socket.SetWriteDeadline(time.Now().Add(closeTimeout))
		c.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
		c.writeLock.Unlock()
		c.socket.Close()
	})
}

// NewGorillaWebSocketWrapper wraps a server side connection. Messages longer
// than readLimit bytes fail the read and close the socket; zero means no limit.
func NewGorillaWebSocketWrapper(conn *websocket.Conn, readLimit int64) *Conn {
	if readLimit > 0 {
		conn.SetReadLimit(readLimit)
	}
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &Conn{socket: conn}
}

// Dial opens a client connection. Servers ping every 30 seconds, which keeps
// the read deadline moving on their side; clients answer pongs automatically.
func Dial(ctx context.Context, url string, header http.Header) (*Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &Conn{socket: conn}, nil
}
