// Command aggregate_boundary reports how the service layer reaches the session tables. Session and
// shot-sample rows must only be written through the session aggregate; any service method that
// calls a repo write directly is listed as a residual and fails the run under -strict.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type methodStats struct {
	StructName          string   `json:"struct_name"`
	Method              string   `json:"method"`
	File                string   `json:"file"`
	Line                int      `json:"line"`
	RepoWriteCalls      int      `json:"repo_write_calls"`
	RepoFieldsWritten   []string `json:"repo_fields_written"`
	RepoReadCalls       int      `json:"repo_read_calls"`
	AggregateCalls      int      `json:"aggregate_calls"`
	AggregateMethodsHit []string `json:"aggregate_methods_hit"`
}

type boundaryReport struct {
	RepoWriteCallsites int           `json:"repo_write_callsites"`
	AggregateCallsites int           `json:"aggregate_callsites"`
	ReadOnlyMethods    int           `json:"read_only_methods"`
	Residuals          []methodStats `json:"residuals"`
	Methods            []methodStats `json:"methods"`
}

type structFields struct {
	RepoFields      map[string]string
	AggregateFields map[string]string
}

var repoWriteMethods = map[string]bool{
	"Create":       true,
	"UpdateFields": true,
	"Delete":       true,
}

var aggregateMethods = map[string]bool{
	"Create":        true,
	"Assemble":      true,
	"Update":        true,
	"CreateSample":  true,
	"ImportSamples": true,
	"Delete":        true,
}

func main() {
	strict := flag.Bool("strict", false, "exit non-zero when a service writes through a repo")
	flag.Parse()
	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	servicesDir := filepath.Join(root, "internal", "services")
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, servicesDir, func(fi os.FileInfo) bool {
		name := fi.Name()
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	}, 0)
	if err != nil {
		exitf("parse dir: %v", err)
	}
	pkg, ok := pkgs["services"]
	if !ok {
		exitf("services package not found in %s", servicesDir)
	}

	fieldsByStruct := map[string]structFields{}
	for _, f := range pkg.Files {
		collectStructFields(f, fieldsByStruct)
	}
	var methods []methodStats
	for filePath, f := range pkg.Files {
		rel, err := filepath.Rel(root, filePath)
		if err != nil {
			rel = filePath
		}
		collectMethodStats(fset, f, rel, fieldsByStruct, &methods)
	}

	report := buildReport(methods)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exitf("marshal report: %v", err)
	}
	fmt.Println(string(out))
	if *strict && report.RepoWriteCallsites > 0 {
		os.Exit(2)
	}
}

func collectStructFields(file *ast.File, out map[string]structFields) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil {
				continue
			}
			sf := structFields{RepoFields: map[string]string{}, AggregateFields: map[string]string{}}
			for _, field := range st.Fields.List {
				sel, ok := field.Type.(*ast.SelectorExpr)
				if !ok || len(field.Names) == 0 {
					continue
				}
				pkgIdent, ok := sel.X.(*ast.Ident)
				if !ok {
					continue
				}
				typeName := sel.Sel.Name
				for _, name := range field.Names {
					switch {
					case pkgIdent.Name == "repos" && strings.HasSuffix(typeName, "Repo"):
						sf.RepoFields[name.Name] = typeName
					case pkgIdent.Name == "domainagg" && strings.HasSuffix(typeName, "Aggregate"):
						sf.AggregateFields[name.Name] = typeName
					}
				}
			}
			if len(sf.RepoFields) > 0 || len(sf.AggregateFields) > 0 {
				out[ts.Name.Name] = sf
			}
		}
	}
}

func collectMethodStats(fset *token.FileSet, file *ast.File, relFile string, fieldsByStruct map[string]structFields, out *[]methodStats) {
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || fd.Body == nil || len(fd.Recv.List) == 0 {
			continue
		}
		recvName, recvType := recvInfo(fd.Recv.List[0])
		sf, ok := fieldsByStruct[recvType]
		if recvName == "" || !ok {
			continue
		}

		m := methodStats{
			StructName: recvType,
			Method:     fd.Name.Name,
			File:       filepath.ToSlash(relFile),
			Line:       fset.Position(fd.Pos()).Line,
		}
		written := map[string]bool{}
		aggHit := map[string]bool{}
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			fnSel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			rcvSel, ok := fnSel.X.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			base, ok := rcvSel.X.(*ast.Ident)
			if !ok || base.Name != recvName {
				return true
			}
			field, method := rcvSel.Sel.Name, fnSel.Sel.Name
			if _, ok := sf.RepoFields[field]; ok {
				if repoWriteMethods[method] {
					m.RepoWriteCalls++
					written[field] = true
				} else {
					m.RepoReadCalls++
				}
			}
			if _, ok := sf.AggregateFields[field]; ok && aggregateMethods[method] {
				m.AggregateCalls++
				aggHit[method] = true
			}
			return true
		})
		m.RepoFieldsWritten = sortedKeys(written)
		m.AggregateMethodsHit = sortedKeys(aggHit)
		*out = append(*out, m)
	}
}

func buildReport(methods []methodStats) boundaryReport {
	sort.Slice(methods, func(i, j int) bool {
		if methods[i].File == methods[j].File {
			return methods[i].Line < methods[j].Line
		}
		return methods[i].File < methods[j].File
	})
	report := boundaryReport{Methods: methods}
	for _, m := range methods {
		report.RepoWriteCallsites += m.RepoWriteCalls
		report.AggregateCallsites += m.AggregateCalls
		if m.RepoWriteCalls > 0 {
			report.Residuals = append(report.Residuals, m)
		}
		if m.RepoWriteCalls == 0 && m.AggregateCalls == 0 && m.RepoReadCalls > 0 {
			report.ReadOnlyMethods++
		}
	}
	return report
}

func recvInfo(field *ast.Field) (string, string) {
	if field == nil || len(field.Names) == 0 {
		return "", ""
	}
	recvName := field.Names[0].Name
	switch t := field.Type.(type) {
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return recvName, id.Name
		}
	case *ast.Ident:
		return recvName, t.Name
	}
	return "", ""
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
