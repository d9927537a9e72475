package ogrinspect

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/dave/jennifer/jen"
)

const geofieldPath = "github.com/shashiranjanraj/geoinspect/pkg/geofield"

// Header is the comment above the package clause of generated files.
const Header = "This is an auto-generated GORM model module created by geoinspect ogrinspect."

// Render prints m as gofmt'd Go source lines. Without imports only the
// declarations are printed.
func Render(m *Model) ([]string, error) {
	var buf bytes.Buffer
	decls := declarations(m)

	if m.Imports {
		f := jen.NewFile(m.Package)
		f.HeaderComment(Header)
		f.ImportName(geofieldPath, "geofield")
		for i, d := range decls {
			if i > 0 {
				f.Line()
			}
			f.Add(d)
		}
		if err := f.Render(&buf); err != nil {
			return nil, fmt.Errorf("ogrinspect: render %s: %w", m.Name, err)
		}
		return splitLines(buf.String()), nil
	}

	for i, d := range decls {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		if err := d.Render(&buf); err != nil {
			return nil, fmt.Errorf("ogrinspect: render %s: %w", m.Name, err)
		}
	}
	return splitLines(buf.String()), nil
}

func declarations(m *Model) []*jen.Statement {
	var fields []jen.Code
	if m.PrimaryKey {
		fields = append(fields, jen.Id("ID").Uint().Tag(map[string]string{"gorm": "primaryKey"}))
	}
	for _, f := range m.Fields {
		tags := map[string]string{"gorm": f.GormTag}
		if f.Validate != "" {
			tags["validate"] = f.Validate
		}
		fields = append(fields, jen.Id(f.Name).Add(goType(f.GoType)).Tag(tags))
	}
	fields = append(fields, jen.Id(m.Geom.Name).Qual(geofieldPath, "Geometry").Tag(map[string]string{"gorm": m.Geom.GormTag}))

	decls := []*jen.Statement{
		jen.Type().Id(m.Name).Struct(fields...),
	}
	if m.NameField != "" {
		decls = append(decls, stringMethod(m))
	}
	return decls
}

// stringMethod returns the name field, dereferenced and formatted as needed.
func stringMethod(m *Model) *jen.Statement {
	field := jen.Id("m").Dot(m.NameField)

	var body []jen.Code
	typ := m.NameType
	if ptr := strings.HasPrefix(typ, "*"); ptr {
		typ = typ[1:]
		body = append(body, jen.If(jen.Id("m").Dot(m.NameField).Op("==").Nil()).Block(jen.Return(jen.Lit(""))))
		field = jen.Op("*").Id("m").Dot(m.NameField)
	}
	if typ == "string" {
		body = append(body, jen.Return(field))
	} else {
		body = append(body, jen.Return(jen.Qual("fmt", "Sprint").Call(field)))
	}

	return jen.Func().Params(jen.Id("m").Op("*").Id(m.Name)).Id("String").Params().String().Block(body...)
}

func goType(t string) *jen.Statement {
	ptr := strings.HasPrefix(t, "*")
	t = strings.TrimPrefix(t, "*")

	var base *jen.Statement
	if pkg, name, ok := strings.Cut(t, "."); ok {
		base = jen.Qual(pkg, name)
	} else {
		base = jen.Id(t)
	}
	if ptr {
		return jen.Op("*").Add(base)
	}
	return base
}

// RenderTemplate executes a user template over m instead of Render.
func RenderTemplate(m *Model, name, text string) ([]string, error) {
	t, err := template.New(name).Funcs(template.FuncMap{
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,
		"quote":  strconv.Quote,
		"header": func() string { return Header },
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("ogrinspect: parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("ogrinspect: execute template %s: %w", name, err)
	}
	return splitLines(buf.String()), nil
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
