// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package typedjson allows encoding and decoding Dart syntax trees as JSON.
// The decoding process needs to know what syntax node types to decode into,
// so the "typed JSON" requires "Type" keys in some syntax tree node objects:
//
//   - The root node
//   - Any node represented as an interface field in the parent Go type
//
// The types of all other nodes can be inferred from context alone.
//
// Positions are encoded as objects holding the byte offset along with the
// line and column, resolved against the file being encoded. Only the
// offset is used when decoding, and the file's line table is not encoded.
package typedjson

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"mvdan.cc/dartfmt/syntax"
)

// Encode is a shortcut for EncodeOptions.Encode, with the default options.
func Encode(w io.Writer, f *syntax.File) error {
	return EncodeOptions{}.Encode(w, f)
}

// EncodeOptions allows configuring how syntax trees are encoded.
type EncodeOptions struct {
	Indent string // e.g. "\t"
}

// Encode writes f to w in its typed JSON form,
// as described in the package documentation.
func (opts EncodeOptions) Encode(w io.Writer, f *syntax.File) error {
	e := encoder{file: f}
	encVal, tname := e.value(reflect.ValueOf(f))
	encVal.Elem().Field(0).SetString(tname)
	enc := json.NewEncoder(w)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(encVal.Interface())
}

type encoder struct {
	file *syntax.File
}

func (e encoder) value(val reflect.Value) (reflect.Value, string) {
	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			break
		}
		return e.value(val.Elem())
	case reflect.Interface:
		if val.IsNil() {
			break
		}
		enc, tname := e.value(val.Elem())
		if tname == "" {
			panic("interface did not contain a named type?")
		}
		enc.Elem().Field(0).SetString(tname)
		return enc, ""
	case reflect.Struct:
		// Construct a new struct with an optional Type, Pos and End,
		// and then all the visible fields which aren't derived.
		typ := val.Type()
		fields := []reflect.StructField{typeField, posField, endField}
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if typ == fileType && field.Name == "Lines" {
				continue
			}
			ftyp := anyType
			if field.Type == posType {
				ftyp = exportedPosType
			}
			fields = append(fields, reflect.StructField{
				Name: field.Name,
				Type: ftyp,
				Tag:  `json:",omitempty"`,
			})
		}
		encTyp := reflect.StructOf(fields)
		enc := reflect.New(encTyp).Elem()

		// Pos methods are defined on struct pointer receivers.
		for i, name := range [...]string{"Pos", "End"} {
			if fn := val.Addr().MethodByName(name); fn.IsValid() {
				e.pos(enc.Field(1+i), fn.Call(nil)[0].Interface().(syntax.Pos))
			}
		}
		for i := 3; i < encTyp.NumField(); i++ {
			ftyp := encTyp.Field(i)
			fval := val.FieldByName(ftyp.Name)
			if ftyp.Type == exportedPosType {
				e.pos(enc.Field(i), fval.Interface().(syntax.Pos))
			} else if encElem, _ := e.value(fval); encElem.IsValid() {
				enc.Field(i).Set(encElem)
			}
		}
		return enc.Addr(), typ.Name()
	case reflect.Slice:
		n := val.Len()
		if n == 0 {
			break
		}
		enc := reflect.MakeSlice(anySliceType, n, n)
		for i := 0; i < n; i++ {
			encElem, _ := e.value(val.Index(i))
			enc.Index(i).Set(encElem)
		}
		return enc, ""
	case reflect.Bool:
		if val.Bool() {
			return val, ""
		}
	case reflect.String:
		if val.String() != "" {
			return val, ""
		}
	case reflect.Int:
		if val.Int() != 0 {
			return val, ""
		}
	default:
		panic(val.Kind().String())
	}
	return noValue, ""
}

func (e encoder) pos(encPtr reflect.Value, p syntax.Pos) {
	if !p.IsValid() {
		return
	}
	position := e.file.Position(p)
	encPtr.Set(reflect.ValueOf(&exportedPos{
		Offset: position.Offset,
		Line:   position.Line,
		Col:    position.Column,
	}))
}

var (
	noValue reflect.Value

	anyType         = reflect.TypeOf((*any)(nil)).Elem()        // any
	anySliceType    = reflect.SliceOf(anyType)                  // []any
	posType         = reflect.TypeOf((*syntax.Pos)(nil)).Elem() // syntax.Pos
	fileType        = reflect.TypeOf((*syntax.File)(nil)).Elem()
	exportedPosType = reflect.TypeOf((*exportedPos)(nil)) // *exportedPos

	typeField = reflect.StructField{
		Name: "Type",
		Type: reflect.TypeOf((*string)(nil)).Elem(),
		Tag:  `json:",omitempty"`,
	}
	posField = reflect.StructField{
		Name: "Pos",
		Type: exportedPosType,
		Tag:  `json:",omitempty"`,
	}
	endField = reflect.StructField{
		Name: "End",
		Type: exportedPosType,
		Tag:  `json:",omitempty"`,
	}
)

type exportedPos struct {
	Offset, Line, Col int
}

// Decode reads a syntax tree in its typed JSON form from r. The returned
// file has no line table, so its Position method is not usable.
func Decode(r io.Reader) (*syntax.File, error) {
	var enc any
	if err := json.NewDecoder(r).Decode(&enc); err != nil {
		return nil, err
	}
	m, ok := enc.(map[string]any)
	if !ok || m["Type"] != "File" {
		return nil, fmt.Errorf("root node must be a File")
	}
	f := new(syntax.File)
	if err := decodeValue(reflect.ValueOf(f).Elem(), m); err != nil {
		return nil, err
	}
	return f, nil
}

var nodeByName = map[string]reflect.Type{}

func init() {
	for _, node := range []syntax.Node{
		&syntax.File{},

		&syntax.ClassDecl{},
		&syntax.FuncDecl{},
		&syntax.VarDecl{},
		&syntax.ExprBody{},

		&syntax.Block{},
		&syntax.ExprStmt{},
		&syntax.IfStmt{},
		&syntax.ForStmt{},
		&syntax.ForInStmt{},
		&syntax.WhileStmt{},
		&syntax.DoStmt{},
		&syntax.ReturnStmt{},
		&syntax.BreakStmt{},
		&syntax.ContinueStmt{},
		&syntax.ThrowStmt{},
		&syntax.EmptyStmt{},

		&syntax.Ident{},
		&syntax.BasicLit{},
		&syntax.ThisExpr{},
		&syntax.SuperExpr{},
		&syntax.ParenExpr{},
		&syntax.UnaryExpr{},
		&syntax.BinaryExpr{},
		&syntax.AssignExpr{},
		&syntax.CondExpr{},
		&syntax.MethodCall{},
		&syntax.CallExpr{},
		&syntax.SelectorExpr{},
		&syntax.IndexExpr{},
		&syntax.NewExpr{},
		&syntax.ListLit{},
		&syntax.NamedArg{},
	} {
		typ := reflect.TypeOf(node).Elem()
		nodeByName[typ.Name()] = typ
	}
}

func decodeValue(val reflect.Value, enc any) error {
	switch enc := enc.(type) {
	case map[string]any:
		if val.Kind() == reflect.Ptr && val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		if typeName, _ := enc["Type"].(string); typeName != "" && val.Kind() == reflect.Interface {
			typ := nodeByName[typeName]
			if typ == nil {
				return fmt.Errorf("unknown type: %q", typeName)
			}
			ptr := reflect.New(typ)
			if !ptr.Type().AssignableTo(val.Type()) {
				return fmt.Errorf("%s cannot be used as %s", typeName, val.Type())
			}
			val.Set(ptr)
		}
		for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
			if val.IsNil() {
				return fmt.Errorf("missing type for %s", val.Type())
			}
			val = val.Elem()
		}
		for name, fv := range enc {
			switch name {
			case "Type", "Pos", "End":
				// Type is already used above. Pos and End came from method calls.
				continue
			}
			fval := val.FieldByName(name)
			if !fval.IsValid() {
				return fmt.Errorf("unknown field for %s: %q", val.Type(), name)
			}
			if fval.Type() == posType {
				m, _ := fv.(map[string]any)
				offset, ok := m["Offset"].(float64)
				if !ok {
					return fmt.Errorf("invalid position for %s.%s", val.Type(), name)
				}
				fval.Set(reflect.ValueOf(syntax.Pos(int(offset) + 1)))
				continue
			}
			if err := decodeValue(fval, fv); err != nil {
				return err
			}
		}
	case []any:
		for _, encElem := range enc {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(elem, encElem); err != nil {
				return err
			}
			val.Set(reflect.Append(val, elem))
		}
	case float64:
		// Kinds and operators are ints, but encoding/json defaults to float64.
		if val.Kind() != reflect.Int {
			return fmt.Errorf("cannot decode number into %s", val.Type())
		}
		val.SetInt(int64(enc))
	default:
		if enc != nil {
			val.Set(reflect.ValueOf(enc).Convert(val.Type()))
		}
	}
	return nil
}
