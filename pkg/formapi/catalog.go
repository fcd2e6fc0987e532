package formapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Form is a compiled schema served by the API.
type Form struct {
	Name    string     `json:"name"`
	Dialect string     `json:"dialect"`
	Source  string     `json:"source,omitempty"`
	Rule    *rule.Rule `json:"-"`
}

// Catalog holds compiled forms by name. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	forms map[string]Form
}

func NewCatalog() *Catalog {
	return &Catalog{forms: make(map[string]Form)}
}

// Add registers f. Names must be unique.
func (c *Catalog) Add(f Form) error {
	if f.Rule == nil || f.Name == "" {
		return fmt.Errorf("%w: form needs a name and a rule", ErrFailedToLoadForms)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.forms[f.Name]; ok {
		return fmt.Errorf("%w: %q from %s and %s", ErrDuplicateForm, f.Name, prev.Source, f.Source)
	}
	c.forms[f.Name] = f
	return nil
}

// Get returns the form registered under name.
func (c *Catalog) Get(name string) (Form, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.forms[name]
	if !ok {
		return Form{}, fmt.Errorf("%w: %q", ErrFormNotFound, name)
	}
	return f, nil
}

// List returns all forms sorted by name.
func (c *Catalog) List() []Form {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Form, 0, len(c.forms))
	for _, f := range c.forms {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.forms)
}

// LoadDir compiles every supported schema file directly inside dir. Files
// with other extensions are skipped. Any schema error aborts loading; all
// failures are reported together.
func LoadDir(ctx context.Context, dir string, reg *schema.Registry, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = logger.Discard()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadForms, err)
	}

	catalog := NewCatalog()
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !schema.Supported(path) {
			log.DebugContext(ctx, "skipping file", slog.String("file", path))
			continue
		}

		r, dialect, err := reg.CompileFile(ctx, path, "", "")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := catalog.Add(Form{Name: r.Name(), Dialect: dialect, Source: path, Rule: r}); err != nil {
			errs = append(errs, err)
			continue
		}
		log.InfoContext(ctx, "form loaded", logger.Form(r.Name()), logger.Dialect(dialect), slog.String("file", path))
	}

	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrFailedToLoadForms}, errs...)...)
	}
	return catalog, nil
}
