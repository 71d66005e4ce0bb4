package websocket

import (
	"net/url"
	"strings"
	"time"

	"github.com/coder/websocket"
)

// Message types sent to browsers.
const (
	MessageBuild       = "build"
	MessageBuildFailed = "build_failed"
)

// Message is one JSON frame broadcast to every client.
type Message struct {
	Type      string    `json:"type"`
	Project   string    `json:"project,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is one connected browser.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	remote    string
	connected time.Time
}

// OriginValidator decides which browser origins may connect.
type OriginValidator interface {
	IsAllowedOrigin(origin string) bool
}

// LocalOrigins allows pages served from the loopback interface plus any
// extra hosts listed.
type LocalOrigins struct {
	Hosts []string
}

// IsAllowedOrigin implements OriginValidator.
func (l LocalOrigins) IsAllowedOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	for _, allowed := range l.Hosts {
		if strings.EqualFold(allowed, host) || strings.EqualFold(allowed, u.Host) {
			return true
		}
	}
	return false
}
