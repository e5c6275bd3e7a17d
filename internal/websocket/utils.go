package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Connection deadlines. Monitor sockets are long-lived; the read window just
// has to outlast the dashboard's ping interval.
const (
	writeWait = 10 * time.Second
	readWait  = 5 * time.Minute
)

// WriteTyped sends one typed payload, refreshing the write deadline first.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// ReadJSON decodes the next client message, refreshing the read deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(readWait))
	return conn.ReadJSON(v)
}
