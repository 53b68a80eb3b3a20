package game

import (
	"errors"
	"testing"
)

func TestCraftAmniFrom150(t *testing.T) {
	v := &Virologist{Name: "A", Nucleotide: 150, AminoAcid: 150}
	v.LearnCode(CodeAmni)

	a, err := CraftAgent(v, CodeAmni, 100, 100, DefaultRules())
	if err != nil {
		t.Fatalf("craft failed: %v", err)
	}
	if a.Kind != AgentAmni {
		t.Errorf("expected AmniVirus, got %s", a.Kind)
	}
	if v.Nucleotide != 50 || v.AminoAcid != 50 {
		t.Errorf("expected ledger (50,50), got (%d,%d)", v.Nucleotide, v.AminoAcid)
	}
	if len(v.Crafted) != 1 {
		t.Errorf("expected 1 crafted agent, got %d", len(v.Crafted))
	}
}

func TestCraftInsufficientLeavesLedger(t *testing.T) {
	v := &Virologist{Name: "A", Nucleotide: 50, AminoAcid: 50}
	v.LearnCode(CodeAmni)

	_, err := CraftAgent(v, CodeAmni, 100, 100, DefaultRules())
	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("expected ErrInsufficientResources, got %v", err)
	}
	if v.Nucleotide != 50 || v.AminoAcid != 50 {
		t.Errorf("ledger changed to (%d,%d)", v.Nucleotide, v.AminoAcid)
	}
	if len(v.Crafted) != 0 {
		t.Errorf("expected no crafted agents, got %d", len(v.Crafted))
	}
}

func TestCraftStrictInequality(t *testing.T) {
	cases := []struct {
		n, a int
		ok   bool
	}{
		{100, 100, false},
		{101, 100, false},
		{100, 101, false},
		{101, 101, true},
		{0, 500, false},
	}
	for _, c := range cases {
		v := &Virologist{Name: "A", Nucleotide: c.n, AminoAcid: c.a}
		v.LearnCode(CodeAmni)
		_, err := CraftAgent(v, CodeAmni, 100, 100, DefaultRules())
		if (err == nil) != c.ok {
			t.Errorf("(%d,%d): expected ok=%v, got err=%v", c.n, c.a, c.ok, err)
		}
		if c.ok && (v.Nucleotide != c.n-100 || v.AminoAcid != c.a-100) {
			t.Errorf("(%d,%d): wrong deduction, got (%d,%d)", c.n, c.a, v.Nucleotide, v.AminoAcid)
		}
		if CanAfford(&Virologist{Nucleotide: c.n, AminoAcid: c.a}, Cost{100, 100}) != c.ok {
			t.Errorf("(%d,%d): CanAfford disagrees with CraftAgent", c.n, c.a)
		}
	}
}

func TestCraftRequiresLearnedCode(t *testing.T) {
	v := &Virologist{Name: "A", Nucleotide: 500, AminoAcid: 500}
	_, err := CraftAgent(v, CodeStun, 70, 70, DefaultRules())
	if !errors.Is(err, ErrCodeNotLearned) {
		t.Fatalf("expected ErrCodeNotLearned, got %v", err)
	}
	if v.Nucleotide != 500 {
		t.Errorf("ledger changed")
	}
}

func TestCraftUsesRulesCostAndDuration(t *testing.T) {
	gs, logger := newLineGame(t, 1, 0)
	v := gs.Active()
	v.Nucleotide, v.AminoAcid = 200, 200
	v.LearnCode(CodeDance)

	a, err := gs.CraftAgent(v, CodeDance)
	if err != nil {
		t.Fatalf("craft: %v", err)
	}
	cost := gs.Rules.Cost(CodeDance)
	if v.Nucleotide != 200-cost.Nucleotide || v.AminoAcid != 200-cost.AminoAcid {
		t.Errorf("expected ledger minus %s, got (%d,%d)", cost, v.Nucleotide, v.AminoAcid)
	}
	if a.Duration != 3 {
		t.Errorf("expected DanceVirus duration 3, got %d", a.Duration)
	}
	if len(logger.Events()) == 0 || logger.LastEvent().Subject != "DanceVirus" {
		t.Errorf("expected a craft event, got %+v", logger.LastEvent())
	}
}
