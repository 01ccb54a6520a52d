package sparse

import "testing"

func TestMatrixSetValue(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	if M.Value(2, 3) != DefaultNullValue {
		t.Errorf("expected empty matrix to return null value")
	}
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(9, 0, -7)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(9, 0); v != -7 {
		t.Errorf("expected M(9,0) = -7, is %d", v)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
	t.Logf("M = %s", M)
}

func TestMatrixOverwrite(t *testing.T) {
	M := NewIntMatrix(3, 3, -1)
	if old := M.Set(1, 1, 5); old != -1 {
		t.Errorf("expected first Set to return null value, returned %d", old)
	}
	if old := M.Set(1, 1, 5); old != 5 || M.Overwrites() != 0 {
		t.Errorf("setting an equal value is not an overwrite")
	}
	if old := M.Set(1, 1, 6); old != 5 {
		t.Errorf("expected Set to return previous value 5, returned %d", old)
	}
	if M.Overwrites() != 1 || M.Value(1, 1) != 6 {
		t.Errorf("expected last write to win and be counted, have %d/%d", M.Value(1, 1), M.Overwrites())
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 value, have %d", M.ValueCount())
	}
}

func TestMatrixRow(t *testing.T) {
	M := NewIntMatrix(4, 4, DefaultNullValue)
	M.Set(2, 3, 3)
	M.Set(1, 1, 9)
	M.Set(2, 0, 0)
	M.Set(3, 0, 9)
	var cols []int
	M.Row(2, func(j int, v int32) {
		cols = append(cols, j)
		if int32(j) != v {
			t.Errorf("unexpected value %d at column %d", v, j)
		}
	})
	if len(cols) != 2 || cols[0] != 0 || cols[1] != 3 {
		t.Errorf("expected columns [0 3] for row 2, have %v", cols)
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set outside of matrix to panic")
		}
	}()
	NewIntMatrix(2, 2, 0).Set(2, 0, 1)
}
