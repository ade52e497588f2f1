// Package examplemodule is the collaborator the syntax showcase imports.
// Its only contract is to export ExampleFunction.
package examplemodule

// ExampleFunction is resolved by the showcase at construction time.
func ExampleFunction() {}
