// Package analyze finds wrapper declarations and turns them into descriptors.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to load the
// packages named on the command line, then walks every type declaration
// carrying a directive comment:
//
//	//holda:wrapper NoEq NoOrd
//	type Meters struct {
//		value float64
//	}
//
//	//holda:string
//	type UserName struct {
//		inner string
//	}
//
// Key types:
//   - WrapperDescriptor: wrapper name, wrapped field, inner type, mode
//   - TypeRef: the inner type expression plus the imports it needs
//   - InnerTraits: what go/types (or the syntax alone) tells us about the
//     inner type, used to pick a delegation strategy
//   - StructuralError: the declaration cannot be a wrapper
package analyze
