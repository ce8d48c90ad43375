package restart

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/lattice-wm/lattice/internal/msg"
	"github.com/lattice-wm/lattice/internal/stack"
)

// ReleaseResourcesFrom broadcasts msg.ReleaseResources() to every
// workspace's layout (spec.md §4.F step 1), logging (not failing) a
// layout that errors handling it, per the same "layout fault -> treat as
// unchanged, keep going" policy Refresh applies (spec.md §7 item 2).
func ReleaseResourcesFrom(ws stack.WindowSet, log *logrus.Entry) {
	for _, workspace := range ws.AllWorkspaces() {
		if workspace.Layout == nil {
			continue
		}
		if _, err := workspace.Layout.HandleMessage(msg.ReleaseResources()); err != nil {
			log.WithField("workspace", workspace.Tag).WithError(err).
				Warn("release_resources fault during restart, continuing anyway")
		}
	}
}

// Serialize encodes ws as spec.md §4.F step 3 describes: the WindowSet
// tree with each workspace's layout nested as its own encoded string, so
// Deserialize (deserialize.go in this package, called for the --resume
// flag) can rebuild an equivalent WindowSet via internal/layout.Decode.
//
// The format is a length-prefixed record list, one per screen/workspace,
// so arbitrary whitespace inside an encoded layout never desyncs the
// parse — the same scheme internal/layout's own codec uses for nested
// layouts, applied one level higher.
func Serialize(ws stack.WindowSet) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "screens %d\n", 1+len(ws.Visible))
	if err := writeScreen(&b, ws.Current); err != nil {
		return "", err
	}
	for _, sc := range ws.Visible {
		if err := writeScreen(&b, sc); err != nil {
			return "", err
		}
	}
	fmt.Fprintf(&b, "hidden %d\n", len(ws.Hidden))
	for _, h := range ws.Hidden {
		if err := writeWorkspace(&b, h); err != nil {
			return "", err
		}
	}
	fmt.Fprintf(&b, "floating %d\n", len(ws.Floating))
	for w, rr := range ws.Floating {
		fmt.Fprintf(&b, "%d %f %f %f %f\n", w, rr.X, rr.Y, rr.W, rr.H)
	}
	return b.String(), nil
}

func writeScreen(b *strings.Builder, sc stack.Screen) error {
	fmt.Fprintf(b, "screen %d %d %d %d %d %d %d %d %d\n",
		sc.ID, sc.Detail.Rect.X, sc.Detail.Rect.Y, sc.Detail.Rect.W, sc.Detail.Rect.H,
		sc.Detail.Gap.Top, sc.Detail.Gap.Bottom, sc.Detail.Gap.Left, sc.Detail.Gap.Right)
	return writeWorkspace(b, sc.Workspace)
}

func writeWorkspace(b *strings.Builder, ws stack.Workspace) error {
	var encodedLayout string
	if ws.Layout != nil {
		enc, err := ws.Layout.Encode()
		if err != nil {
			return fmt.Errorf("restart: encoding layout for workspace %q: %w", ws.Tag, err)
		}
		encodedLayout = enc
	}
	windows := ws.Stack.ToList()
	focusIdx := -1
	for i, w := range windows {
		if ws.Stack != nil && w == ws.Stack.Focus {
			focusIdx = i
		}
	}
	fmt.Fprintf(b, "workspace %s %d %d %d %s\n", ws.Tag, len(encodedLayout), len(windows), focusIdx, encodedLayout)
	for _, w := range windows {
		fmt.Fprintf(b, "%d ", w)
	}
	fmt.Fprintln(b)
	return nil
}

// Exec replaces the current process image with argv0 plus extra args
// (spec.md §4.F step 4). It never returns on success: the caller's X
// connection, environment, and every still-mapped client window survive
// because they belong to the X server, not this process (spec.md §9
// "Restart via exec"). The caller must already have flushed the X
// connection before calling Exec.
func Exec(argv0 string, extraArgs []string) error {
	argv := append([]string{argv0}, extraArgs...)
	return syscall.Exec(argv0, argv, os.Environ())
}
