package assets

// StyleLoader loads a CSS style by name, without the .css extension.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}
