package network

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainHTTPIsRedirected(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := NewAutoHttpsConn(server)

	go func() {
		_, _ = client.Write([]byte("GET /admin?x=1 HTTP/1.1\r\nHost: portal.example\r\n\r\n"))
	}()
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 16)
		_, _ = conn.Read(buf)
	}()

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "https://portal.example/admin?x=1", resp.Header.Get("Location"))
	<-done
}

func TestNonHTTPBytesPassThrough(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := NewAutoHttpsConn(server)

	payload := []byte{0x16, 0x03, 0x01, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}
	go func() {
		_, _ = client.Write(payload)
	}()

	got := make([]byte, len(payload))
	_, err := io.ReadFull(conn, got)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
