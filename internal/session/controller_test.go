package session

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/vnet-tools/vnet-tmux/internal/devices"
	"github.com/vnet-tools/vnet-tmux/internal/network"
)

// fakeMux records every operation as a short string, in order.
type fakeMux struct {
	ops      []string
	titles   []string
	commands []string
	nextPane int
	failOn   string
}

func (f *fakeMux) record(op string) error {
	f.ops = append(f.ops, op)
	if f.failOn != "" && op == f.failOn {
		return fmt.Errorf("%s failed", op)
	}
	return nil
}

func (f *fakeMux) newPane(command string) string {
	f.commands = append(f.commands, command)
	id := fmt.Sprintf("%%%d", f.nextPane)
	f.nextPane++
	return id
}

func (f *fakeMux) NewSession(ctx context.Context, name, dir, command string) (string, error) {
	if err := f.record("new-session"); err != nil {
		return "", err
	}
	return f.newPane(command), nil
}

func (f *fakeMux) SetOption(ctx context.Context, target, option, value string) error {
	return f.record("set-option " + option + "=" + value)
}

func (f *fakeMux) SplitWindow(ctx context.Context, target, dir, command string) (string, error) {
	if err := f.record("split-window"); err != nil {
		return "", err
	}
	return f.newPane(command), nil
}

func (f *fakeMux) SetPaneTitle(ctx context.Context, pane, title string) error {
	f.titles = append(f.titles, title)
	return f.record("title " + pane)
}

func (f *fakeMux) SelectLayout(ctx context.Context, target, layout string) error {
	return f.record("layout " + layout)
}

func (f *fakeMux) Attach(ctx context.Context, name string) error {
	return f.record("attach " + name)
}

// echoBuilder builds "<node> <path>" and fails for nodes listed in missing.
type echoBuilder struct {
	missing map[string]bool
}

func (b echoBuilder) Build(node, configPath string) (string, error) {
	if b.missing[node] {
		return "", &devices.NotFoundError{Node: node}
	}
	return node + " " + configPath, nil
}

func nodes(names ...string) []network.Node {
	out := make([]network.Node, 0, len(names))
	for _, name := range names {
		out = append(out, network.Node{Name: name, ConfigPath: "/nets/" + name + ".lnx"})
	}
	return out
}

func TestBuild_OnePanePerNodeInOrder(t *testing.T) {
	for k := 1; k <= 5; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			names := []string{"A", "B", "C", "D", "E"}[:k]
			mux := &fakeMux{}
			c := NewController(mux, echoBuilder{}, "/work")

			panes, err := c.Build(context.Background(), "vnet-test", nodes(names...))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(panes) != k {
				t.Fatalf("Build() created %d panes, want %d", len(panes), k)
			}
			if !reflect.DeepEqual(mux.titles, names) {
				t.Errorf("titles = %v, want %v", mux.titles, names)
			}
			for i, pane := range panes {
				if pane.Title != names[i] {
					t.Errorf("panes[%d].Title = %q, want %q", i, pane.Title, names[i])
				}
				if pane.ID != fmt.Sprintf("%%%d", i) {
					t.Errorf("panes[%d].ID = %q", i, pane.ID)
				}
				if !strings.Contains(mux.commands[i], "/nets/"+names[i]+".lnx") {
					t.Errorf("pane %d command = %q", i, mux.commands[i])
				}
			}

			splits, layouts := 0, 0
			for _, op := range mux.ops {
				switch {
				case op == "split-window":
					splits++
				case strings.HasPrefix(op, "layout "):
					layouts++
				}
			}
			if splits != k-1 || layouts != k-1 {
				t.Errorf("splits = %d, layouts = %d, want %d each", splits, layouts, k-1)
			}
		})
	}
}

func TestBuild_OperationOrder(t *testing.T) {
	mux := &fakeMux{}
	c := NewController(mux, echoBuilder{}, "")

	if _, err := c.Build(context.Background(), "vnet-test", nodes("A", "B")); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{
		"new-session",
		"title %0",
		"set-option pane-border-status=top",
		"split-window",
		"title %1",
		"layout tiled",
	}
	if !reflect.DeepEqual(mux.ops, want) {
		t.Errorf("ops = %q, want %q", mux.ops, want)
	}
}

func TestBuild_UnresolvableNodeCreatesNothing(t *testing.T) {
	mux := &fakeMux{}
	c := NewController(mux, echoBuilder{missing: map[string]bool{"C": true}}, "")

	panes, err := c.Build(context.Background(), "vnet-test", nodes("A", "B", "C"))

	var nf *devices.NotFoundError
	if !errors.As(err, &nf) || nf.Node != "C" {
		t.Fatalf("Build() error = %v, want *devices.NotFoundError for C", err)
	}
	if panes != nil || len(mux.ops) != 0 {
		t.Errorf("Build() touched tmux: panes=%v ops=%q", panes, mux.ops)
	}
}

func TestBuild_NoNodes(t *testing.T) {
	c := NewController(&fakeMux{}, echoBuilder{}, "")
	if _, err := c.Build(context.Background(), "vnet-test", nil); !errors.Is(err, ErrNoNodes) {
		t.Errorf("Build(nil) error = %v, want ErrNoNodes", err)
	}
}

func TestBuild_FailureLeavesCreatedPanes(t *testing.T) {
	mux := &fakeMux{failOn: "split-window"}
	c := NewController(mux, echoBuilder{}, "")

	panes, err := c.Build(context.Background(), "vnet-test", nodes("A", "B", "C"))
	if err == nil {
		t.Fatal("Build() error = nil, want split failure")
	}
	if len(panes) != 1 || panes[0].Title != "A" {
		t.Errorf("Build() panes = %+v, want only A", panes)
	}
	for _, op := range mux.ops {
		if strings.HasPrefix(op, "kill") {
			t.Errorf("Build() rolled back with %q", op)
		}
	}
	if last := mux.ops[len(mux.ops)-1]; last != "split-window" {
		t.Errorf("last op = %q, want the failing split-window", last)
	}
}

func TestAttach(t *testing.T) {
	mux := &fakeMux{}
	c := NewController(mux, echoBuilder{}, "")

	if err := c.Attach(context.Background(), "vnet-test"); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !reflect.DeepEqual(mux.ops, []string{"attach vnet-test"}) {
		t.Errorf("ops = %q", mux.ops)
	}
}
