package schematic_test

import (
	"testing"

	schematic "github.com/schematic-go/schematic"
)

func firstCode(t *testing.T, err error) string {
	t.Helper()
	inv, ok := schematic.AsInvalid(err)
	if !ok {
		t.Fatalf("expected *Invalid, got %v", err)
	}
	return inv.Issues()[0].Code
}

func TestLengthCheckers(t *testing.T) {
	s := schematic.String(schematic.With(schematic.MinLength(2), schematic.MaxLength(4)))
	if _, err := s.Convert("abc"); err != nil {
		t.Fatalf("abc should pass: %v", err)
	}
	if code := firstCode(t, mustFail(t, s, "a")); code != schematic.CodeTooShort {
		t.Fatalf("want too_short, got %s", code)
	}
	if code := firstCode(t, mustFail(t, s, "abcde")); code != schematic.CodeTooLong {
		t.Fatalf("want too_long, got %s", code)
	}
}

func TestLength_CountsRunes(t *testing.T) {
	s := schematic.String(schematic.With(schematic.MaxLength(3)))
	if _, err := s.Convert("äöü"); err != nil {
		t.Fatalf("three runes should pass: %v", err)
	}
}

func TestValueCheckers(t *testing.T) {
	s := schematic.Int(schematic.With(schematic.MinValue(1), schematic.MaxValue(10)))
	if _, err := s.Convert(5); err != nil {
		t.Fatalf("5 should pass: %v", err)
	}
	if code := firstCode(t, mustFail(t, s, 0)); code != schematic.CodeTooSmall {
		t.Fatalf("want too_small, got %s", code)
	}
	if code := firstCode(t, mustFail(t, s, 11)); code != schematic.CodeTooBig {
		t.Fatalf("want too_big, got %s", code)
	}
}

func TestEquals_LooseNumeric(t *testing.T) {
	s := schematic.Int(schematic.With(schematic.Equals(2)))
	if _, err := s.Convert(2.9); err != nil { // truncates to 2 before checking
		t.Fatalf("want pass, got %v", err)
	}
	if code := firstCode(t, mustFail(t, s, 3)); code != schematic.CodeNotEqual {
		t.Fatalf("want not_equal, got %s", code)
	}
}

func TestIn_Membership(t *testing.T) {
	s := schematic.String(schematic.With(schematic.In("red", "green")))
	if _, err := s.Convert("red"); err != nil {
		t.Fatalf("red should pass: %v", err)
	}
	if code := firstCode(t, mustFail(t, s, "blue")); code != schematic.CodeInvalidEnum {
		t.Fatalf("want invalid_enum, got %s", code)
	}
}

func TestDynamicBound_ReResolvedPerCheck(t *testing.T) {
	max := 5
	s := schematic.String(schematic.With(schematic.MaxLengthFunc(func() int { return max })))
	if _, err := s.Convert("hello"); err != nil {
		t.Fatalf("within dynamic bound: %v", err)
	}
	max = 3
	if _, err := s.Convert("hello"); err == nil {
		t.Fatalf("expected failure after bound tightened")
	}
}

func TestDefaultForInvalid_CheckerFailure(t *testing.T) {
	s := schematic.Int(
		schematic.With(schematic.MaxValue(5)),
		schematic.Default(-1),
		schematic.UseDefaultForInvalid(),
	)
	// 9 converts cleanly but fails the checker; the default substitutes.
	v, err := s.Convert(9)
	if err != nil || v != -1 {
		t.Fatalf("want default after checker failure, got v=%v err=%v", v, err)
	}
	v, err = s.Convert(3)
	if err != nil || v != int64(3) {
		t.Fatalf("passing value must convert normally, got v=%v err=%v", v, err)
	}
}

func TestCheckers_CollectAllFailures(t *testing.T) {
	s := schematic.Int(schematic.With(schematic.MinValue(10), schematic.Equals(10)))
	inv, ok := schematic.AsInvalid(mustFail(t, s, 3))
	if !ok || inv.Len() != 2 {
		t.Fatalf("want both checker failures collected, got %v", inv)
	}
	if v, has := inv.Value(); !has || v != int64(3) {
		t.Fatalf("want attempted value annotated, got %v (%v)", v, has)
	}
}

func mustFail(t *testing.T, s schematic.Schema, v any) error {
	t.Helper()
	_, err := s.Convert(v)
	if err == nil {
		t.Fatalf("expected error converting %v", v)
	}
	return err
}
