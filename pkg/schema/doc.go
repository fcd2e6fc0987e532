// Package schema holds what the dialect factories share: the Document type,
// the Factory contract, JSON and YAML parsers for schema files and a registry
// that picks a factory by dialect name.
//
// Loading and compiling a file:
//
//	doc, err := schema.Load(ctx, "forms/person.jq.yaml")
//	if err != nil {
//	    return err
//	}
//	reg := schema.NewRegistry(jsonschema.New(), jqvalidation.New())
//	r, err := reg.Compile(schema.DetectDialect("forms/person.jq.yaml", doc), "Main", doc)
//
// Structural problems are returned as *SchemaError and match ErrSchema with
// errors.Is. They are always raised while compiling, never while validating.
package schema
