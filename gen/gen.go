// Package gen generates typed factory helpers from a model set.
//
// For every model it emits a {model}_factory.go file with a model
// accessor, Make/Prepare wrappers and typed override options:
//
//	user, err := fixtures.MakeUser(ctx, f, fixtures.WithUserEmail("qa@corp.test"))
//
// plus a relations.go file linking relation targets once all model
// variables exist.
package gen

import (
	"context"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/bakery/schema"
)

// Import paths referenced by generated code.
const (
	bakeryPkg   = "github.com/syssam/bakery"
	schemaPkg   = "github.com/syssam/bakery/schema"
	generatePkg = "github.com/syssam/bakery/generate"
)

// Generator emits typed factory helpers for a model set.
type Generator struct {
	set     *schema.Set
	outDir  string
	pkg     string
	workers int
}

// New returns a generator writing to outDir. The generated package
// name defaults to "fixtures".
func New(set *schema.Set, outDir string) *Generator {
	return &Generator{set: set, outDir: outDir, pkg: "fixtures"}
}

// WithPackage sets the generated package name.
func (g *Generator) WithPackage(name string) *Generator {
	if name != "" {
		g.pkg = name
	}
	return g
}

// WithWorkers sets the number of parallel writer workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Generate renders and writes all files.
func (g *Generator) Generate(ctx context.Context) error {
	if len(g.set.Models) == 0 {
		return fmt.Errorf("gen: empty model set")
	}
	files := make([]fileTask, 0, len(g.set.Models)+1)
	for _, m := range g.set.Models {
		f, err := g.genModel(m)
		if err != nil {
			return err
		}
		files = append(files, fileTask{
			name: inflect.Underscore(m.Name) + "_factory.go",
			file: f,
		})
	}
	if f := g.genRelations(); f != nil {
		files = append(files, fileTask{name: "relations.go", file: f})
	}
	return g.write(ctx, files)
}

// genModel generates the per-model factory file.
func (g *Generator) genModel(m *schema.Model) (*jen.File, error) {
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by bakery gen. DO NOT EDIT.")

	modelVar := modelVarName(m)
	fields := make([]jen.Code, 0, len(m.Fields))
	for _, fd := range m.Fields {
		code, err := fieldLiteral(m, fd)
		if err != nil {
			return nil, err
		}
		fields = append(fields, code)
	}
	f.Var().Id(modelVar).Op("=").Op("&").Qual(schemaPkg, "Model").Values(jen.Dict{
		jen.Id("Name"):   jen.Lit(m.Name),
		jen.Id("Fields"): jen.Index().Op("*").Qual(schemaPkg, "Field").Values(fields...),
	})

	f.Commentf("%sModel returns the %s model description.", m.Name, m.Name)
	f.Func().Id(m.Name + "Model").Params().Op("*").Qual(schemaPkg, "Model").Block(
		jen.Return(jen.Id(modelVar)),
	)

	f.Commentf("Make%s builds and persists a %s instance.", m.Name, m.Name)
	f.Func().Id("Make"+m.Name).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("f").Op("*").Qual(bakeryPkg, "Factory"),
		jen.Id("opts").Op("...").Qual(bakeryPkg, "Option"),
	).Params(jen.Op("*").Qual(bakeryPkg, "Instance"), jen.Error()).Block(
		jen.Return(jen.Id("f").Dot("Make").Call(jen.Id("ctx"), jen.Id(modelVar), jen.Id("opts").Op("..."))),
	)

	f.Commentf("Prepare%s builds a %s instance without persisting it.", m.Name, m.Name)
	f.Func().Id("Prepare"+m.Name).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("f").Op("*").Qual(bakeryPkg, "Factory"),
		jen.Id("opts").Op("...").Qual(bakeryPkg, "Option"),
	).Params(jen.Op("*").Qual(bakeryPkg, "Instance"), jen.Error()).Block(
		jen.Return(jen.Id("f").Dot("Prepare").Call(jen.Id("ctx"), jen.Id(modelVar), jen.Id("opts").Op("..."))),
	)

	for _, fd := range m.Fields {
		helper := "With" + m.Name + inflect.Camelize(fd.Name)
		f.Commentf("%s overrides the %s field.", helper, fd.Name)
		f.Func().Id(helper).Params(
			jen.Id("v").Add(goType(fd)),
		).Qual(bakeryPkg, "Option").Block(
			jen.Return(jen.Qual(bakeryPkg, "WithValue").Call(jen.Lit(fd.Name), jen.Id("v"))),
		)
	}
	for _, r := range m.Relations {
		helper := "With" + m.Name + inflect.Camelize(r.Name)
		f.Commentf("%s overrides the %s relation.", helper, r.Name)
		param := jen.Id("v").Op("*").Qual(bakeryPkg, "Instance")
		if r.Kind == schema.ToMany {
			param = jen.Id("v").Index().Op("*").Qual(bakeryPkg, "Instance")
		}
		f.Func().Id(helper).Params(param).Qual(bakeryPkg, "Option").Block(
			jen.Return(jen.Qual(bakeryPkg, "WithValue").Call(jen.Lit(r.Name), jen.Id("v"))),
		)
	}
	return f, nil
}

// genRelations generates the init file linking relation targets.
// Relations cannot live in the model literals: model graphs may be
// cyclic.
func (g *Generator) genRelations() *jen.File {
	var stmts []jen.Code
	for _, m := range g.set.Models {
		if len(m.Relations) == 0 {
			continue
		}
		rels := make([]jen.Code, 0, len(m.Relations))
		for _, r := range m.Relations {
			d := jen.Dict{
				jen.Id("Name"):       jen.Lit(r.Name),
				jen.Id("Kind"):       relationKind(r.Kind),
				jen.Id("Target"):     jen.Id(modelVarName(r.Target)),
				jen.Id("TargetName"): jen.Lit(r.Target.Name),
			}
			if r.Through != nil {
				d[jen.Id("Through")] = jen.Id(modelVarName(r.Through))
				d[jen.Id("ThroughName")] = jen.Lit(r.Through.Name)
			}
			if r.Required {
				d[jen.Id("Required")] = jen.Lit(true)
			}
			if r.Column != "" {
				d[jen.Id("Column")] = jen.Lit(r.Column)
			}
			rels = append(rels, jen.Values(d))
		}
		stmts = append(stmts, jen.Id(modelVarName(m)).Dot("Relations").Op("=").
			Index().Op("*").Qual(schemaPkg, "Relation").Values(rels...))
	}
	if len(stmts) == 0 {
		return nil
	}
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by bakery gen. DO NOT EDIT.")
	f.Func().Id("init").Params().Block(stmts...)
	return f
}

// fieldLiteral emits the schema.Field composite literal for a field.
func fieldLiteral(m *schema.Model, fd *schema.Field) (jen.Code, error) {
	d := jen.Dict{
		jen.Id("Name"): jen.Lit(fd.Name),
		jen.Id("Type"): jen.Qual(schemaPkg, typeConst(fd.Type)),
	}
	if fd.Nillable {
		d[jen.Id("Nillable")] = jen.Lit(true)
	}
	if fd.Optional {
		d[jen.Id("Optional")] = jen.Lit(true)
	}
	if fd.Size > 0 {
		d[jen.Id("Size")] = jen.Lit(fd.Size)
	}
	if len(fd.Enums) > 0 {
		enums := make([]jen.Code, len(fd.Enums))
		for i, e := range fd.Enums {
			enums[i] = jen.Lit(e)
		}
		d[jen.Id("Enums")] = jen.Index().String().Values(enums...)
	}
	if fd.Default != nil {
		switch v := fd.Default.(type) {
		case bool, string, int, int64, uint64, float64:
			d[jen.Id("Default")] = jen.Lit(v)
		default:
			return nil, fmt.Errorf("gen: model %q: field %q: cannot emit default of type %T", m.Name, fd.Name, fd.Default)
		}
	}
	return jen.Values(d), nil
}

// goType returns the Go parameter type for a typed override helper.
func goType(fd *schema.Field) *jen.Statement {
	switch fd.Type {
	case schema.TypeBool:
		return jen.Bool()
	case schema.TypeInt:
		return jen.Int()
	case schema.TypeInt8:
		return jen.Int8()
	case schema.TypeInt16:
		return jen.Int16()
	case schema.TypeInt32:
		return jen.Int32()
	case schema.TypeInt64:
		return jen.Int64()
	case schema.TypeUint:
		return jen.Uint()
	case schema.TypeUint8:
		return jen.Uint8()
	case schema.TypeUint16:
		return jen.Uint16()
	case schema.TypeUint32:
		return jen.Uint32()
	case schema.TypeUint64:
		return jen.Uint64()
	case schema.TypeFloat32:
		return jen.Float32()
	case schema.TypeFloat64:
		return jen.Float64()
	case schema.TypeBytes:
		return jen.Index().Byte()
	case schema.TypeUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case schema.TypeTime, schema.TypeDate:
		return jen.Qual("time", "Time")
	case schema.TypeDuration:
		return jen.Qual("time", "Duration")
	case schema.TypeJSON, schema.TypeMap:
		return jen.Map(jen.String()).Any()
	case schema.TypeStrings:
		return jen.Index().String()
	case schema.TypePoint:
		return jen.Qual(generatePkg, "Point")
	default:
		// string, text, slug, url, email, ip, enum, file, image.
		return jen.String()
	}
}

// typeConst returns the schema package constant name for a type tag.
func typeConst(t schema.Type) string {
	switch t {
	case schema.TypeUUID:
		return "TypeUUID"
	case schema.TypeURL:
		return "TypeURL"
	case schema.TypeIP:
		return "TypeIP"
	case schema.TypeJSON:
		return "TypeJSON"
	default:
		return "Type" + inflect.Camelize(t.String())
	}
}

func relationKind(k schema.RelationKind) *jen.Statement {
	if k == schema.ToMany {
		return jen.Qual(schemaPkg, "ToMany")
	}
	return jen.Qual(schemaPkg, "ToOne")
}

func modelVarName(m *schema.Model) string {
	return inflect.CamelizeDownFirst(m.Name) + "Model"
}
