// Package formapi serves compiled form schemas over HTTP.
//
// A Catalog is built from a directory of schema files with LoadDir; each file
// becomes one form named after the file. NewRouter returns a chi router that
// lists the forms, describes them, returns their initial data and validates
// submitted documents. Validation responses carry the full result tree with
// status 200 when the document is valid and 422 when it is not.
//
//	catalog, err := formapi.LoadDir(ctx, "./forms", registry, log)
//	if err != nil {
//		return err
//	}
//	router := formapi.NewRouter(catalog, formapi.WithEngine(eng), formapi.WithLogger(log))
package formapi
