package postgres

import (
	"reflect"
	"sync"
)

// columnMeta is the cached db-tag layout of one struct type.
type columnMeta struct {
	columns  []string
	indices  [][]int
	computed bool
}

var columnCache sync.Map // map[reflect.Type]*columnMeta

// ExtractDBColumns lists the "db" tagged columns of T, embedded structs first-come.
// Used once per repository to build SELECT lists.
func ExtractDBColumns[T any]() []string {
	var zero T
	return metaFor(reflect.TypeOf(zero)).columns
}

// StructToMap converts a struct to a column → value map using "db" tags.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metaFor(rv.Type())
	res := make(map[string]any, len(meta.columns))
	for i, col := range meta.columns {
		res[col] = rv.FieldByIndex(meta.indices[i]).Interface()
	}
	return res
}

func metaFor(t reflect.Type) *columnMeta {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return &columnMeta{}
	}
	if cached, ok := columnCache.Load(t); ok {
		return cached.(*columnMeta)
	}

	meta := &columnMeta{computed: true}
	if t.Kind() == reflect.Struct {
		collectColumns(t, nil, meta)
	}
	actual, _ := columnCache.LoadOrStore(t, meta)
	return actual.(*columnMeta)
}

func collectColumns(t reflect.Type, prefix []int, meta *columnMeta) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectColumns(field.Type, index, meta)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" || !field.IsExported() {
			continue
		}
		meta.columns = append(meta.columns, tag)
		meta.indices = append(meta.indices, index)
	}
}

// WithoutColumns returns cols minus the excluded ones, order preserved.
func WithoutColumns(cols []string, exclude ...string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		skip := false
		for _, e := range exclude {
			if c == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}
