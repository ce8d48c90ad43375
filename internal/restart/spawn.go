package restart

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// newBlockingCommand builds the compiler invocation used by runCompiler,
// its stdout/stderr both redirected to the error log the user is shown on
// failure.
func newBlockingCommand(name string, args []string, errFile *os.File) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Stdout = errFile
	cmd.Stderr = errFile
	return cmd
}

// spawnDetached launches name/args as a non-blocking, detached process
// via golang.org/x/sys/unix.ForkExec, matching spec.md §5's spawn
// contract: the caller never blocks, and the child calls setsid() (via
// Setsid in the ProcAttr) before exec so it detaches from the controlling
// terminal. ForkExec performs the fork+exec in a single runtime-safe call
// (the same primitive os/exec itself is built on), which is as close to
// the source's double-fork recipe as a Go binary can safely get: a second,
// manual fork() call from already-forked Go code (to re-parent the
// grandchild to init) is not safe to perform directly against the Go
// runtime's threading model, so this spawns one detached child (no second
// fork, so the child is not re-parented to init) and reaps it from a
// background goroutine once it exits.
func spawnDetached(name string, args []string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("restart: spawn %s: %w", name, err)
	}
	argv := append([]string{name}, args...)
	pid, err := unix.ForkExec(path, argv, &unix.ProcAttr{
		Env: os.Environ(),
		Sys: &unix.SysProcAttr{Setsid: true},
	})
	if err != nil {
		return fmt.Errorf("restart: fork/exec %s: %w", name, err)
	}
	go reap(pid)
	return nil
}

// reap waits for the detached child so it never lingers as a zombie,
// mirroring the "window manager immediately reaps the direct child" half
// of spec.md §5's double-fork recipe.
func reap(pid int) {
	var ws unix.WaitStatus
	_, _ = unix.Wait4(pid, &ws, 0, nil)
}
