package sockclient

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeServer speaks just enough of the protocol to exercise Client: it echoes
// "> " after every line it reads, and for "show stat"/"show info" style
// commands returns canned bodies followed by the prompt.
func fakeServer(t *testing.T, sock string, handle func(cmd string) []string) net.Listener {
	t.Helper()
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewScanner(conn)
		for r.Scan() {
			cmd := r.Text()
			for _, line := range handle(cmd) {
				conn.Write([]byte(line + "\n"))
			}
			conn.Write([]byte(sentinel))
		}
	}()
	return l
}

func TestConnectHandshake(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "lb.sock")
	l := fakeServer(t, sock, func(cmd string) []string { return nil })
	defer l.Close()

	c := New()
	if err := c.Connect(sock); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()
}

func TestRecvLines(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "lb.sock")
	l := fakeServer(t, sock, func(cmd string) []string {
		if cmd == "show info" {
			return []string{"Name: HAProxy", "Version: 1.4.4"}
		}
		return nil
	})
	defer l.Close()

	c := New()
	if err := c.Connect(sock); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if err := c.Send("show info"); err != nil {
		t.Fatalf("send: %v", err)
	}
	lines, err := c.RecvLines()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Name: HAProxy" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestRecvLineCap(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "lb.sock")
	l := fakeServer(t, sock, func(cmd string) []string {
		lines := make([]string, 1500)
		for i := range lines {
			lines[i] = "x"
		}
		return lines
	})
	defer l.Close()

	c := New()
	if err := c.Connect(sock); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if err := c.Send("show stat"); err != nil {
		t.Fatalf("send: %v", err)
	}
	lines, err := c.RecvLines()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if len(lines) != maxLines {
		t.Fatalf("expected %d lines, got %d", maxLines, len(lines))
	}
}

func TestConnectFailsOnUnresponsivePeer(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "lb.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		// Never write a prompt back; let the client time out.
		time.Sleep(2 * cmdReadTimeout)
	}()

	c := New()
	err = c.Connect(sock)
	if err == nil {
		t.Fatal("expected init error on unresponsive peer")
	}
	if !strings.Contains(err.Error(), "initializing interactive mode") {
		t.Fatalf("unexpected error: %v", err)
	}
}
