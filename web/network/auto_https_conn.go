// Package network lets the portal serve HTTPS and plain HTTP on one port: a
// plain request gets a 307 to its https URL, TLS traffic passes through.
package network

import (
	"bufio"
	"bytes"
	"net"
	"net/http"
	"sync"
)

// sniffSize is how much of the first packet is inspected for an HTTP request line.
const sniffSize = 2048

type AutoHttpsConn struct {
	net.Conn

	firstBuf []byte
	bufStart int

	sniffOnce sync.Once
}

func NewAutoHttpsConn(conn net.Conn) net.Conn {
	return &AutoHttpsConn{
		Conn: conn,
	}
}

// redirectPlainHTTP reads the first packet. When it parses as an HTTP request
// the client is redirected and the connection closed; otherwise the bytes are
// kept for the TLS handshake.
func (c *AutoHttpsConn) redirectPlainHTTP() {
	buf := make([]byte, sniffSize)
	n, err := c.Conn.Read(buf)
	c.firstBuf = buf[:n]
	if err != nil {
		return
	}
	request, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(c.firstBuf)))
	if err != nil {
		return
	}
	resp := http.Response{
		StatusCode: http.StatusTemporaryRedirect,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
	}
	resp.Header.Set("Location", "https://"+request.Host+request.RequestURI)
	_ = resp.Write(c.Conn)
	_ = c.Close()
	c.firstBuf = nil
}

func (c *AutoHttpsConn) Read(buf []byte) (int, error) {
	c.sniffOnce.Do(c.redirectPlainHTTP)

	if c.firstBuf != nil {
		n := copy(buf, c.firstBuf[c.bufStart:])
		c.bufStart += n
		if c.bufStart >= len(c.firstBuf) {
			c.firstBuf = nil
		}
		return n, nil
	}

	return c.Conn.Read(buf)
}
