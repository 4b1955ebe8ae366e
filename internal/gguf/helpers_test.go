package gguf

import (
	"reflect"
	"testing"
)

func TestGetArray(t *testing.T) {
	kv := map[string]Value{
		"strings": {
			Type: TypeArray,
			Value: ArrayValue{
				ElemType: TypeString,
				Values:   []any{"a", "b", "c"},
			},
		},
		"ints": {
			Type: TypeArray,
			Value: ArrayValue{
				ElemType: TypeInt32,
				Values:   []any{int32(1), int32(2), int32(3)},
			},
		},
		"mixed": {
			Type: TypeArray,
			Value: ArrayValue{
				ElemType: TypeString,
				Values:   []any{"a", 1}, // mixed types, invalid for GGUF usually, but checking behavior
			},
		},
		"not_array": {
			Type:  TypeString,
			Value: "hello",
		},
	}

	// Test strings
	strs, ok := GetArray[string](kv, "strings")
	if !ok {
		t.Error("expected ok for strings")
	}
	if !reflect.DeepEqual(strs, []string{"a", "b", "c"}) {
		t.Errorf("got %v, want %v", strs, []string{"a", "b", "c"})
	}

	// Test ints
	ints, ok := GetArray[int32](kv, "ints")
	if !ok {
		t.Error("expected ok for ints")
	}
	if !reflect.DeepEqual(ints, []int32{1, 2, 3}) {
		t.Errorf("got %v, want %v", ints, []int32{1, 2, 3})
	}

	// Test type mismatch
	_, ok = GetArray[int32](kv, "strings")
	if ok {
		t.Error("expected !ok for type mismatch (string array as int32)")
	}

	// Test element mismatch
	_, ok = GetArray[string](kv, "mixed")
	if ok {
		t.Error("expected !ok for mixed element types")
	}

	// Test not an array
	_, ok = GetArray[string](kv, "not_array")
	if ok {
		t.Error("expected !ok for non-array value")
	}

	// Test missing key
	_, ok = GetArray[string](kv, "missing")
	if ok {
		t.Error("expected !ok for missing key")
	}
}

func TestGetStringAndFileMethod(t *testing.T) {
	kv := map[string]Value{
		KeyName:         {Type: TypeString, Value: "Llama 3 8B"},
		KeyArchitecture: {Type: TypeString, Value: "llama"},
		"count":         {Type: TypeUint32, Value: uint32(7)},
	}

	if s, ok := GetString(kv, KeyName); !ok || s != "Llama 3 8B" {
		t.Fatalf("GetString = %q, %v", s, ok)
	}
	if _, ok := GetString(kv, "count"); ok {
		t.Fatal("expected !ok for non-string value")
	}

	f := &File{KV: kv}
	if s, ok := f.GetString(KeyArchitecture); !ok || s != "llama" {
		t.Fatalf("File.GetString = %q, %v", s, ok)
	}
	var nilFile *File
	if _, ok := nilFile.GetString(KeyName); ok {
		t.Fatal("nil file should report missing keys")
	}

	if n, ok := GetUint64(kv, "count"); !ok || n != 7 {
		t.Fatalf("GetUint64 = %d, %v", n, ok)
	}
	if _, err := MustGetString(kv, "missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Value{Type: TypeString, Value: "x"}, "x"},
		{Value{Type: TypeBool, Value: true}, "true"},
		{Value{Type: TypeUint32, Value: uint32(3)}, "3"},
		{Value{Type: TypeArray, Value: ArrayValue{ElemType: TypeString, Values: []any{"a", "b"}}}, "array(string) len=2"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.v); got != tc.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
