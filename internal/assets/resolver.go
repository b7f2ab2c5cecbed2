package assets

import "errors"

// Resolver tries a custom style directory first and falls back to the
// built-in styles when a name is not found there.
type Resolver struct {
	custom   StyleLoader // nil without a custom directory
	embedded StyleLoader
}

// Compile-time interface check.
var _ StyleLoader = (*Resolver)(nil)

// NewResolver returns a Resolver. An empty dir uses built-in styles only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if dir != "" {
		fsLoader, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads name from the custom directory, else from the built-ins.
// Only not-found errors fall back; validation and read errors do not.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}
