package field

import (
	"testing"
	"time"

	"github.com/fsq/fsq/fsq/entity"
	qerrors "github.com/fsq/fsq/fsq/errors"
	"github.com/fsq/fsq/fsq/query"
)

func TestCanonicalAliases(t *testing.T) {
	cases := []struct {
		kind query.TargetKind
		in   string
		want string
	}{
		{query.KindFile, "ctime", "create_time"},
		{query.KindFile, "mtime", "modify_time"},
		{query.KindFile, "atime", "access_time"},
		{query.KindFile, "perms", "permissions"},
		{query.KindFile, "filepath", "path"},
		{query.KindFile, "filename", "name"},
		{query.KindFile, "type", "filetype"},
		{query.KindFile, "MTIME", "modify_time"},
		{query.KindFile, "size", "size"},
		{query.KindDir, "ctime", "create_time"},
		{query.KindData, "data", "dataline"},
		{query.KindData, "line", "dataline"},
		{query.KindData, "filename", "name"},
	}
	for _, c := range cases {
		got, err := Canonical(c.kind, c.in)
		if err != nil {
			t.Errorf("%v %q: unexpected error: %v", c.kind, c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("%v %q: expected %q, got %q", c.kind, c.in, c.want, got)
		}
	}
}

func TestCanonicalUnknownField(t *testing.T) {
	_, err := Canonical(query.KindDir, "size")
	if err == nil {
		t.Fatal("expected error: size is not a directory field")
	}
	if !qerrors.IsKind(err, qerrors.ErrSemantic) {
		t.Errorf("expected semantic error, got %v", err)
	}

	_, err = Canonical(query.KindData, "owner")
	if err == nil {
		t.Fatal("expected error: owner is not a data field")
	}
}

func TestFieldsStarOrder(t *testing.T) {
	fields := Fields(query.KindFile)
	if fields[0] != "name" {
		t.Errorf("expected name first, got %q", fields[0])
	}
	if fields[len(fields)-1] != "filetype" {
		t.Errorf("expected filetype last, got %q", fields[len(fields)-1])
	}
	if len(Fields(query.KindDir))+2 != len(fields) {
		t.Errorf("expected file fields to extend dir fields by size and filetype")
	}
}

func TestExtractNullables(t *testing.T) {
	rec := &entity.Record{Name: "x", Path: "./x"}
	if !Extract(rec, "filetype").IsNull() {
		t.Error("expected null filetype for empty extension")
	}
	if !Extract(rec, "owner").IsNull() {
		t.Error("expected null owner")
	}
	if !Extract(rec, "create_time").IsNull() {
		t.Error("expected null create_time for zero time")
	}
	if Extract(rec, "name").Str != "x" {
		t.Error("expected name extracted")
	}
}

func TestExtractTimes(t *testing.T) {
	now := time.Now()
	rec := &entity.Record{ModifyTime: now}
	v := Extract(rec, "modify_time")
	if v.Kind != query.KindTime || !v.Time.Equal(now) {
		t.Errorf("expected time value, got %v", v)
	}
}

func TestExtractSized(t *testing.T) {
	rec := &entity.Record{Size: 2048}
	v := ExtractSized(rec, "KiB")
	if v.Kind != query.KindFloat || v.Float != 2 {
		t.Errorf("expected 2 KiB, got %v", v)
	}
	v = ExtractSized(rec, "KB")
	if v.Float != 2.048 {
		t.Errorf("expected 2.048 KB, got %v", v)
	}
	v = ExtractSized(rec, "b")
	if v.Float != 16384 {
		t.Errorf("expected 16384 bits, got %v", v)
	}
}

func TestExtractSizedRounding(t *testing.T) {
	rec := &entity.Record{Size: 1}
	v := ExtractSized(rec, "MiB")
	// 1/1048576 rounded to five decimal places
	if v.Float != 0.00000 {
		t.Errorf("expected 0 after rounding, got %v", v.Float)
	}
	rec = &entity.Record{Size: 1500}
	v = ExtractSized(rec, "KiB")
	if v.Float != 1.46484 {
		t.Errorf("expected 1.46484, got %v", v.Float)
	}
}

func TestUnitDivisorsCaseSensitive(t *testing.T) {
	if _, ok := UnitDivisor("KiB"); !ok {
		t.Error("expected KiB to be a valid unit")
	}
	if _, ok := UnitDivisor("kib"); ok {
		t.Error("expected kib to be rejected")
	}
	if d, _ := UnitDivisor("b"); d != 0.125 {
		t.Errorf("expected bit divisor 0.125, got %v", d)
	}
	if d, _ := UnitDivisor("TB"); d != 1e12 {
		t.Errorf("expected TB divisor 1e12, got %v", d)
	}
}

func TestValidateExpandsStar(t *testing.T) {
	q, err := query.Parse("SELECT * FROM .")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Validate(q); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(q.Projections) != len(Fields(query.KindFile)) {
		t.Errorf("expected star expanded to %d projections, got %d",
			len(Fields(query.KindFile)), len(q.Projections))
	}
	if q.Projections[0].Field != "name" {
		t.Errorf("expected name first, got %q", q.Projections[0].Field)
	}
}

func TestValidateCanonicalizesProjections(t *testing.T) {
	q, err := query.Parse("SELECT filename, mtime FROM .")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Validate(q); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if q.Projections[0].Field != "name" || q.Projections[1].Field != "modify_time" {
		t.Errorf("expected canonical projections, got %+v", q.Projections)
	}
}

func TestValidateCanonicalizesCondition(t *testing.T) {
	q, err := query.Parse("SELECT * FROM . WHERE mtime > '2024-01-01' AND filename = 'x'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Validate(q); err != nil {
		t.Fatalf("validate: %v", err)
	}
	outer := q.Condition.(query.Logical)
	left := outer.Left.(query.Comparison).Left.(query.FieldRef)
	if left.Name != "modify_time" {
		t.Errorf("expected modify_time, got %q", left.Name)
	}
	right := outer.Right.(query.Comparison).Left.(query.FieldRef)
	if right.Name != "name" {
		t.Errorf("expected name, got %q", right.Name)
	}
}

func TestValidateRejectsFieldForWrongKind(t *testing.T) {
	// size is not a directory field; the query must fail validation
	// before any traversal.
	q, err := query.Parse("SELECT[TYPE DIR] * FROM . WHERE size > 10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = Validate(q)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !qerrors.IsKind(err, qerrors.ErrSemantic) {
		t.Errorf("expected semantic error, got %v", err)
	}
}

func TestValidateRejectsUnitOnNonSize(t *testing.T) {
	q, err := query.Parse("SELECT name[KiB] FROM .")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Validate(q); err == nil {
		t.Fatal("expected error for unit on name")
	}
}

func TestValidateRejectsUnknownUnit(t *testing.T) {
	q, err := query.Parse("SELECT size[XB] FROM .")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Validate(q); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestValidateArrayElements(t *testing.T) {
	q, err := query.Parse("SELECT * FROM . WHERE type IN ('.go', bogus_field)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Validate(q); err == nil {
		t.Fatal("expected error for unknown field inside array")
	}
}
