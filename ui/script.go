package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/proto"
)

// RunScript drives h from action lines on r. The initial tree and every
// rebuilt tree are written to w, each followed by a blank line. Blank
// lines and lines starting with '#' are skipped. Rejected actions are
// reported as "error: ..." lines and do not stop the run; a quit
// action, end of input or ctx does.
func RunScript(ctx context.Context, h *connect.Host, r io.Reader, w io.Writer) error {
	var werr error
	write := func(t *proto.Tree) {
		if werr == nil {
			_, werr = fmt.Fprintf(w, "%s\n", proto.SerializeTree(t))
		}
	}

	prev := h.SetNotify(write)
	defer h.SetNotify(prev)

	write(h.Tree())

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := h.ProcessAction(line); err != nil && werr == nil {
			_, werr = fmt.Fprintf(w, "error: %v\n", err)
		}
		if werr != nil {
			return fmt.Errorf("ui: script output: %w", werr)
		}
		if h.Quit() {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("ui: script input: %w", err)
	}
	return nil
}
