// Package term is the terminal front end: a hot-seat PlayerController that
// renders the active virologist's view and reads numbered choices.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/peterkuimelis/virologists/internal/game"
	"github.com/peterkuimelis/virologists/internal/log"
	"github.com/peterkuimelis/virologists/internal/save"
	"github.com/peterkuimelis/virologists/internal/view"
)

// ErrQuit is returned from ChooseAction when the player types "quit".
var ErrQuit = errors.New("player quit")

// Controller implements game.PlayerController on a text stream.
type Controller struct {
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex
}

// NewController reads choices from in and writes the board to out.
func NewController(in io.Reader, out io.Writer) *Controller {
	return &Controller{in: bufio.NewReader(in), out: out}
}

// ChooseAction implements game.PlayerController.
func (c *Controller) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(actions) == 0 {
		return game.Action{}, fmt.Errorf("no legal actions")
	}
	active := state.Active()
	c.renderState(view.BuildStateView(state, active.ID))
	views := view.Actions(actions)
	c.renderActions(views)

	for {
		idx, err := c.readChoice(state, len(views))
		if err != nil {
			return game.Action{}, err
		}
		if idx >= 0 {
			return actions[idx], nil
		}
		if err := ctx.Err(); err != nil {
			return game.Action{}, err
		}
	}
}

// Notify implements game.PlayerController.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, log.FormatEvent(event))
	return err
}

// GameOver prints the final result.
func (c *Controller) GameOver(state *game.GameState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, "          GAME OVER")
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	fmt.Fprintln(c.out, state.Result)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
}

func (c *Controller) renderState(sv *view.StateView) {
	if sv == nil {
		return
	}
	you := sv.You
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  %s  (%s)  Nucleotide: %d/%d  Amino acid: %d/%d\n",
		you.Name, you.Mode, you.Nucleotide, you.Capacity, you.AminoAcid, you.Capacity)
	fmt.Fprintf(c.out, "║  Gear: %s\n", list(you.Gear))
	fmt.Fprintf(c.out, "║  Codes: %s\n", list(you.Codes))
	fmt.Fprintf(c.out, "║  Crafted: %s\n", list(you.Crafted))
	fmt.Fprintf(c.out, "║  Affected by: %s\n", list(you.Active))
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(c.out, "║  Standing on %s\n", formatField(sv.Field))
	for _, n := range sv.Neighbors {
		fmt.Fprintf(c.out, "║    exit to %s\n", formatField(n))
	}
	for _, o := range sv.Nearby {
		fmt.Fprintf(c.out, "║    %s is here (%s) %s\n", o.Name, o.Mode, list(o.Gear))
	}
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | Round %d | %s", sv.Turn, sv.Round, sv.Active)
	if sv.Moved {
		turnInfo += " | already moved"
	}
	fmt.Fprintln(c.out, turnInfo)
}

func formatField(f view.FieldView) string {
	if f.Detail == "" {
		return fmt.Sprintf("%s [%s]", f.Name, f.Kind)
	}
	return fmt.Sprintf("%s [%s: %s]", f.Name, f.Kind, f.Detail)
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func (c *Controller) renderActions(actions []view.ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
	fmt.Fprintln(c.out, "  (save FILE to save, quit to leave)")
}

// readChoice returns a 0-based action index, or -1 after handling a command
// that does not pick an action.
func (c *Controller) readChoice(state *game.GameState, count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return 0, err
		}
		line = strings.TrimSpace(line)
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			if err != nil {
				return 0, err
			}
			continue
		case fields[0] == "quit" || fields[0] == "q":
			return 0, ErrQuit
		case fields[0] == "save" && len(fields) == 2:
			if err := saveTo(fields[1], state); err != nil {
				fmt.Fprintf(c.out, "save failed: %v\n", err)
			} else {
				fmt.Fprintf(c.out, "saved to %s\n", fields[1])
			}
			return -1, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			if err != nil {
				return 0, err
			}
			continue
		}
		return n - 1, nil
	}
}

// saveTo writes a YAML save, or a compressed snapshot for .zst paths.
func saveTo(path string, state *game.GameState) error {
	if strings.HasSuffix(path, ".zst") {
		return save.WriteSnapshot(path, state)
	}
	return save.Save(path, state)
}
