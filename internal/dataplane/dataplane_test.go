package dataplane

import (
	"bufio"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/lbtop/lbtop/internal/sockclient"
)

func row(pxname, svname string, iid, sid, typ int) string {
	cells := make([]string, 51)
	cells[0] = pxname
	cells[1] = svname
	idx := map[string]int{"iid": 27, "sid": 28, "type": 32}
	for i := range cells {
		if cells[i] == "" && i != idx["iid"] && i != idx["sid"] && i != idx["type"] {
			cells[i] = "0"
		}
	}
	cells[idx["iid"]] = strconv.Itoa(iid)
	cells[idx["sid"]] = strconv.Itoa(sid)
	cells[idx["type"]] = strconv.Itoa(typ)
	// HAProxy terminates every CSV line with a trailing separator.
	return strings.Join(cells, ",") + ","
}

func startFake(t *testing.T, handle func(cmd string) []string) (*sockclient.Client, func()) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "lb.sock")
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
			for _, line := range handle(r.Text()) {
				conn.Write([]byte(line + "\n"))
			}
			conn.Write([]byte("> "))
		}
	}()

	c := sockclient.New()
	if err := c.Connect(sock); err != nil {
		t.Fatalf("connect: %v", err)
	}
	return c, func() { c.Close(); l.Close() }
}

func TestUpdateStatUnfiltered(t *testing.T) {
	c, cleanup := startFake(t, func(cmd string) []string {
		if cmd == "show stat" {
			return []string{
				row("web", "FRONTEND", 1, 0, 0),
				row("web", "app1", 1, 1, 2),
				row("web", "BACKEND", 1, 0, 1),
			}
		}
		return nil
	})
	defer cleanup()

	p := New(c)
	warnings, err := p.UpdateStat()
	if err != nil {
		t.Fatalf("update stat: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if p.Stat().ProxyCount != 1 || p.Stat().ServiceCount != 3 {
		t.Fatalf("unexpected counts: %+v", p.Stat())
	}
}

func TestUpdateStatConfigChangeWarning(t *testing.T) {
	calls := 0
	c, cleanup := startFake(t, func(cmd string) []string {
		if cmd != "show stat" {
			return nil // handshake commands
		}
		calls++
		if calls == 1 {
			return []string{
				row("web", "FRONTEND", 1, 0, 0),
				row("web", "BACKEND", 1, 0, 1),
				row("api", "FRONTEND", 2, 0, 0),
				row("api", "BACKEND", 2, 0, 1),
				row("db", "FRONTEND", 3, 0, 0),
				row("db", "BACKEND", 3, 0, 1),
			}
		}
		return []string{
			row("web", "FRONTEND", 1, 0, 0),
			row("web", "BACKEND", 1, 0, 1),
			row("api", "FRONTEND", 2, 0, 0),
			row("api", "BACKEND", 2, 0, 1),
		}
	})
	defer cleanup()

	p := New(c)
	if _, err := p.UpdateStat(); err != nil {
		t.Fatalf("first update: %v", err)
	}
	warnings, err := p.UpdateStat()
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Text, "config changed") {
		t.Fatalf("expected config changed warning, got %v", warnings)
	}
}

func TestRegisterStatFilterInvalid(t *testing.T) {
	p := New(sockclient.New())
	if err := p.RegisterStatFilter([]string{"not a filter"}); err == nil {
		t.Fatal("expected invalid filter error")
	}
}

func TestUpdateStatStaleFilter(t *testing.T) {
	c, cleanup := startFake(t, func(cmd string) []string {
		return nil // every `show stat <iid> <type> <sid>` returns nothing
	})
	defer cleanup()

	p := New(c)
	if err := p.RegisterStatFilter([]string{"5 -1 -1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := p.UpdateStat(); err == nil {
		t.Fatal("expected stale stat filter error")
	}
}
