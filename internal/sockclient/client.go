// Package sockclient implements the stateful "interactive prompt" session
// against a HAProxy-style administrative Unix socket: connect, send a single
// command line, and receive lines up to the prompt sentinel.
//
// The client is a small state machine — disconnected, handshaking, idle,
// awaiting a reply, back to idle — and only ever has one request/reply pair
// in flight. recv must fully drain to the sentinel before the next send.
package sockclient

import (
	"bytes"
	"fmt"
	"iter"
	"net"
	"time"

	"github.com/lbtop/lbtop/internal/lberr"
)

const (
	// Sentinel marks the tail of every reply, including the handshake.
	sentinel = "> "

	// readBufSize is the fixed per-Read buffer size.
	readBufSize = 4096

	// maxLines bounds a single recv() to avoid unbounded memory growth if a
	// reply is pathologically large or a buggy peer never sends the prompt.
	maxLines = 1000

	// cmdReadTimeout bounds each individual socket Read.
	cmdReadTimeout = 1 * time.Second

	// cliTimeoutSeconds is sent as `set timeout cli N` right after the
	// handshake so the remote doesn't close an idle interactive session
	// between polling ticks.
	cliTimeoutSeconds = 60
)

type state int

const (
	stateDisconnected state = iota
	stateHandshaking
	stateIdle
	stateAwaitingReply
)

// Client owns exactly one connected Unix stream socket in interactive
// "prompt" mode. It is not safe for concurrent use — callers (the data plane
// and the embedded CLI) must take turns.
type Client struct {
	conn  net.Conn
	path  string
	state state
}

func New() *Client {
	return &Client{state: stateDisconnected}
}

// Connect dials path, enters prompt mode, and raises the CLI idle timeout.
// Failing either handshake step is an *lberr.Error of KindInit.
func (c *Client) Connect(path string) error {
	conn, err := net.DialTimeout("unix", path, cmdReadTimeout)
	if err != nil {
		return lberr.Wrap(lberr.KindSocket, "connect "+path, err)
	}
	c.conn = conn
	c.path = path
	c.state = stateHandshaking

	if err := c.Send("prompt"); err != nil {
		return lberr.Wrap(lberr.KindInit, "error while initializing interactive mode", err)
	}
	if err := c.Wait(); err != nil {
		return lberr.Wrap(lberr.KindInit, "error while initializing interactive mode", err)
	}
	if err := c.Send(fmt.Sprintf("set timeout cli %d", cliTimeoutSeconds)); err != nil {
		return lberr.Wrap(lberr.KindInit, "error while initializing interactive mode", err)
	}
	if err := c.Wait(); err != nil {
		return lberr.Wrap(lberr.KindInit, "error while initializing interactive mode", err)
	}

	c.state = stateIdle
	return nil
}

// Send writes line+"\n" in a single Write call.
func (c *Client) Send(line string) error {
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return lberr.Wrap(lberr.KindSocket, "send", err)
	}
	c.state = stateAwaitingReply
	return nil
}

func (c *Client) readChunk() ([]byte, error) {
	buf := make([]byte, readBufSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(cmdReadTimeout)); err != nil {
		return nil, lberr.Wrap(lberr.KindSocket, "set read deadline", err)
	}
	n, err := c.conn.Read(buf)
	if n == 0 && err != nil {
		return nil, lberr.Wrap(lberr.KindProtocol, "error while waiting for prompt", err)
	}
	return buf[:n], nil
}

// Wait reads and discards until the tail of the receive buffer equals the
// prompt sentinel.
func (c *Client) Wait() error {
	var rbuf []byte
	for !bytes.HasSuffix(rbuf, []byte(sentinel)) {
		chunk, err := c.readChunk()
		if err != nil {
			return err
		}
		keep := len(sentinel) - 1
		if len(rbuf) > keep {
			rbuf = rbuf[len(rbuf)-keep:]
		}
		rbuf = append(rbuf, chunk...)
	}
	c.state = stateIdle
	return nil
}

// Recv yields reply lines lazily, stopping when the prompt sentinel is seen
// at the tail of the buffer or after maxLines lines have been yielded (in
// which case the remainder and the prompt are drained and discarded). End of
// stream before the prompt is a fatal protocol error delivered through err.
func (c *Client) Recv() (seq iter.Seq[string], err *error) {
	var recvErr error
	seq = func(yield func(string) bool) {
		linecount := 0
		var rbuf []byte
		for !bytes.HasSuffix(rbuf, []byte(sentinel)) {
			if linecount == maxLines {
				chunk, e := c.readChunk()
				if e != nil {
					recvErr = e
					return
				}
				keep := len(sentinel) - 1
				if len(rbuf) > keep {
					rbuf = rbuf[len(rbuf)-keep:]
				}
				rbuf = append(rbuf, chunk...)
				continue
			}

			chunk, e := c.readChunk()
			if e != nil {
				recvErr = e
				return
			}
			rbuf = append(rbuf, chunk...)

			for linecount < maxLines {
				idx := bytes.IndexByte(rbuf, '\n')
				if idx < 0 {
					break
				}
				line := rbuf[:idx]
				rbuf = rbuf[idx+1:]
				linecount++
				if !yield(string(line)) {
					c.state = stateIdle
					return
				}
			}
		}
		c.state = stateIdle
	}
	return seq, &recvErr
}

// RecvLines is a convenience wrapper collecting Recv into a slice, for
// callers (like the data plane) that need the whole reply materialized
// before proceeding.
func (c *Client) RecvLines() ([]string, error) {
	seq, errp := c.Recv()
	var lines []string
	for line := range seq {
		lines = append(lines, line)
	}
	if *errp != nil {
		return nil, *errp
	}
	return lines, nil
}

// Close sends a best-effort quit and closes the socket, swallowing errors.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	_ = c.Send("quit")
	err := c.conn.Close()
	c.state = stateDisconnected
	return err
}
