package game

import (
	"errors"
	"testing"
)

func TestLedgerNeverNegative(t *testing.T) {
	v := &Virologist{Name: "A", Nucleotide: 10, AminoAcid: 5}
	if err := v.RemoveNucleotide(11); !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("expected ErrInsufficientResources, got %v", err)
	}
	if err := v.RemoveAminoAcid(6); !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("expected ErrInsufficientResources, got %v", err)
	}
	if v.Nucleotide != 10 || v.AminoAcid != 5 {
		t.Errorf("ledger changed on failure")
	}
	if err := v.RemoveNucleotide(-1); err == nil {
		t.Errorf("negative removal should fail")
	}
	if err := v.RemoveNucleotide(10); err != nil || v.Nucleotide != 0 {
		t.Errorf("exact removal failed: %v", err)
	}
	v.AddAminoAcid(-3)
	if v.AminoAcid != 5 {
		t.Errorf("negative add should be ignored")
	}
	v.drain(20)
	if !v.LedgerEmpty() {
		t.Errorf("drain should clamp at zero")
	}
}

func TestGearOnePerKind(t *testing.T) {
	rules := DefaultRules()
	v := &Virologist{Name: "A"}
	if err := v.PickUpGear(NewGear(GearRobe, rules)); err != nil {
		t.Fatalf("first robe: %v", err)
	}
	if err := v.PickUpGear(NewGear(GearRobe, rules)); !errors.Is(err, ErrGearOwned) {
		t.Errorf("expected ErrGearOwned, got %v", err)
	}
	if err := v.PickUpGear(NewGear(GearAxe, rules)); err != nil {
		t.Errorf("axe: %v", err)
	}
	if g := v.DropGear(GearRobe); g == nil || v.HasGear(GearRobe) {
		t.Errorf("drop failed")
	}
	if v.DropGear(GearRobe) != nil {
		t.Errorf("dropping missing gear should return nil")
	}
}

func TestLearnCodeSetSemantics(t *testing.T) {
	v := &Virologist{Name: "A"}
	if !v.LearnCode(CodeStun) || v.LearnCode(CodeStun) {
		t.Errorf("LearnCode should only report new codes")
	}
	if len(v.Codes) != 1 {
		t.Errorf("expected one code, got %v", v.Codes)
	}
	for _, c := range AllCodes {
		v.LearnCode(c)
	}
	if !v.KnowsAllCodes() {
		t.Errorf("expected every code known")
	}
	if n := v.ForgetCodes(); n != len(AllCodes) || len(v.Codes) != 0 {
		t.Errorf("forget returned %d, codes left %v", n, v.Codes)
	}
}

func TestModeFollowsLatestAgent(t *testing.T) {
	rules := DefaultRules()
	v := &Virologist{Name: "A"}
	dance := NewAgent(AgentDance, rules)
	stun := NewAgent(AgentStun, rules)
	v.addActive(dance)
	v.addActive(stun)
	if v.Mode != MovementStunned {
		t.Errorf("expected stunned, got %s", v.Mode)
	}
	v.removeActive(stun)
	if v.Mode != MovementDance {
		t.Errorf("expected dance after stun expires, got %s", v.Mode)
	}
	v.removeActive(dance)
	if v.Mode != MovementDefault {
		t.Errorf("expected default, got %s", v.Mode)
	}
}

func TestCureKeepsBear(t *testing.T) {
	rules := DefaultRules()
	v := &Virologist{Name: "A"}
	v.addActive(NewAgent(AgentBear, rules))
	v.addActive(NewAgent(AgentStun, rules))
	v.addActive(NewAgent(AgentDance, rules))
	if n := v.cure(); n != 2 {
		t.Errorf("expected 2 cured, got %d", n)
	}
	if !v.BearInfected() || v.Mode != MovementBear {
		t.Errorf("bear virus should survive a cure, mode %s", v.Mode)
	}
}

func TestGearWear(t *testing.T) {
	rules := DefaultRules()
	g := NewGear(GearGlove, rules)
	for i := 1; i < rules.GloveUses; i++ {
		if g.Use() {
			t.Fatalf("glove wore out after %d uses", i)
		}
	}
	if !g.Use() {
		t.Errorf("glove should wear out after %d uses", rules.GloveUses)
	}
	sack := NewGear(GearSack, rules)
	if sack.Use() || sack.Limited() {
		t.Errorf("sack never wears out")
	}
	if NewGear(GearAxe, rules).String() != "AxeGear 1" {
		t.Errorf("unexpected axe token")
	}
}
