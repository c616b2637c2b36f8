// Package detachctx содержит анализатор, запрещающий передавать контекст HTTP-запроса в горутину.
//
// Контекст запроса отменяется, когда хендлер возвращает ответ, поэтому фоновая
// работа, запущенная через go, должна получать context.WithoutCancel(r.Context())
// или собственный контекст.
package detachctx

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// Analyzer находит вызовы (*http.Request).Context() внутри go-выражений
var Analyzer = &analysis.Analyzer{
	Name: "detachctx",
	Doc:  "запрещает передавать (*http.Request).Context() в горутину без context.WithoutCancel",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(node ast.Node) bool {
			goStmt, ok := node.(*ast.GoStmt)
			if !ok {
				return true
			}

			ast.Inspect(goStmt.Call, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				// отвязанный контекст разрешён
				if isPkgFunc(pass, call, "context", "WithoutCancel") {
					return false
				}
				if isRequestContext(pass, call) {
					pass.Reportf(call.Pos(), "request context passed to a goroutine, use context.WithoutCancel")
				}
				return true
			})

			return true
		})
	}

	return nil, nil
}

// isRequestContext проверяет, что call вызывает метод Context у *net/http.Request
func isRequestContext(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Context" {
		return false
	}
	selection, ok := pass.TypesInfo.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return false
	}

	recv := selection.Recv()
	if ptr, ok := recv.(*types.Pointer); ok {
		recv = ptr.Elem()
	}
	named, ok := recv.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "net/http" && obj.Name() == "Request"
}

// isPkgFunc проверяет, что call вызывает функцию pkgPath.name
func isPkgFunc(pass *analysis.Pass, call *ast.CallExpr, pkgPath, name string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	pkg, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	return ok && pkg.Imported().Path() == pkgPath
}
