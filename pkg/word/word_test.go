package word

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		op   Opcode
		a, b uint32
	}{
		{NOP, 0, 0},
		{ASSIGN, 0x1FFF, 0x2AAA & fieldMask},
		{FORK, fieldMask, fieldMask},
		{COMPARE, 1, 2},
	}
	for _, c := range cases {
		w := Encode(c.op, c.a, c.b)
		if got := OpcodeOf(w); got != c.op {
			t.Errorf("OpcodeOf(%#x) = %v, want %v", w, got, c.op)
		}
		if got := AOf(w); got != c.a&fieldMask {
			t.Errorf("AOf(%#x) = %#x, want %#x", w, got, c.a&fieldMask)
		}
		if got := BOf(w); got != c.b&fieldMask {
			t.Errorf("BOf(%#x) = %#x, want %#x", w, got, c.b&fieldMask)
		}
	}
}

func TestDataValueSignExtension(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 134217727, -134217728, 12345, -12345} {
		w := EncodeData(v)
		if OpcodeOf(w) != DATA {
			t.Fatalf("EncodeData(%d) did not produce opcode DATA", v)
		}
		if got := DataValueOf(w); got != v {
			t.Errorf("DataValueOf(EncodeData(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestLiteralParamRoundTrip(t *testing.T) {
	for deref := 0; deref <= 2; deref++ {
		for _, v := range []int32{0, 1, -1, 2047, -2048, 100, -100} {
			p, err := EncodeLiteralParam(v, deref)
			if err != nil {
				t.Fatalf("EncodeLiteralParam(%d, %d): %v", v, deref, err)
			}
			if !IsLiteralParam(p) {
				t.Fatalf("IsLiteralParam(%#x) = false, want true", p)
			}
			if got := LiteralValueOf(p); got != v {
				t.Errorf("LiteralValueOf = %d, want %d", got, v)
			}
			if got := DereferenceCountOf(p); got != deref {
				t.Errorf("DereferenceCountOf = %d, want %d", got, deref)
			}
		}
	}
}

func TestLiteralParamOutOfRange(t *testing.T) {
	if _, err := EncodeLiteralParam(2048, 0); err == nil {
		t.Error("expected error for value 2048")
	}
	if _, err := EncodeLiteralParam(-2049, 0); err == nil {
		t.Error("expected error for value -2049")
	}
}

func TestRegisterParamRoundTrip(t *testing.T) {
	for deref := 0; deref <= 2; deref++ {
		for _, idx := range []int{1, 16, 17, 32} {
			p, err := EncodeRegisterParam(idx, deref)
			if err != nil {
				t.Fatalf("EncodeRegisterParam(%d, %d): %v", idx, deref, err)
			}
			if !IsRegisterParam(p) {
				t.Fatalf("IsRegisterParam(%#x) = false, want true", p)
			}
			if got := RegisterIndexOf(p); got != idx {
				t.Errorf("RegisterIndexOf = %d, want %d", got, idx)
			}
			if got := DereferenceCountOf(p); got != deref {
				t.Errorf("DereferenceCountOf = %d, want %d", got, deref)
			}
		}
	}
}

func TestRegisterParamOutOfRange(t *testing.T) {
	if _, err := EncodeRegisterParam(0, 0); err == nil {
		t.Error("expected error for index 0")
	}
	if _, err := EncodeRegisterParam(33, 0); err == nil {
		t.Error("expected error for index 33")
	}
	if _, err := EncodeRegisterParam(1, 3); err == nil {
		t.Error("expected error for deref 3")
	}
}
