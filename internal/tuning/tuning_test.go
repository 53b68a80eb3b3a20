package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/peterkuimelis/virologists/internal/game"
)

func TestApplyOverridesOnlyGivenKeys(t *testing.T) {
	tun, err := Parse([]byte(`
amni_drain: 35
robe_block_chance: 0.5
max_turns: 80
costs:
  StunCode: {nucleotide: 10, amino_acid: 20}
durations:
  DanceVirus: 5
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r, err := tun.Apply(game.DefaultRules())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if r.AmniDrain != 35 || r.RobeBlockChance != 0.5 {
		t.Errorf("overrides not applied: %+v", r)
	}
	if r.MaxMaterial != game.DefaultMaxMaterial || r.GloveUses != game.DefaultGloveUses {
		t.Errorf("unset keys should keep defaults")
	}
	if c := r.Cost(game.CodeStun); c.Nucleotide != 10 || c.AminoAcid != 20 {
		t.Errorf("unexpected stun cost %s", c)
	}
	if c := r.Cost(game.CodeAmni); c.Nucleotide != 100 || c.AminoAcid != 100 {
		t.Errorf("amni cost should stay 100/100, got %s", c)
	}
	if d := r.Duration(game.AgentDance); d != 5 {
		t.Errorf("expected dance duration 5, got %d", d)
	}
	if tun.TurnLimit(1) != 80 {
		t.Errorf("expected turn limit 80")
	}
}

func TestApplyRejectsUnknownNames(t *testing.T) {
	tun, err := Parse([]byte("costs:\n  FlyCode: {nucleotide: 1, amino_acid: 1}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := tun.Apply(game.DefaultRules()); !errors.Is(err, game.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestApplyValidates(t *testing.T) {
	tun, err := Parse([]byte("robe_block_chance: 1.5\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := tun.Apply(game.DefaultRules()); err == nil {
		t.Errorf("expected a validation error")
	}
}

func TestLoadRulesFromFile(t *testing.T) {
	r, turns, err := LoadRules("")
	if err != nil || turns != game.DefaultMaxTurns || r.MaxMaterial != game.DefaultMaxMaterial {
		t.Fatalf("empty path should give defaults: %v", err)
	}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("glove_uses: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, turns, err = LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if r.GloveUses != 1 || turns != game.DefaultMaxTurns {
		t.Errorf("unexpected rules %+v turns %d", r, turns)
	}

	if _, _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestShippedRulesMatchDefaults(t *testing.T) {
	r, turns, err := LoadRules(filepath.Join("..", "..", "configs", "rules.yaml"))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if r != game.DefaultRules() {
		t.Errorf("configs/rules.yaml drifted from DefaultRules:\n%+v\n%+v", r, game.DefaultRules())
	}
	if turns != game.DefaultMaxTurns {
		t.Errorf("expected %d turns, got %d", game.DefaultMaxTurns, turns)
	}
}
