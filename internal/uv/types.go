package uv

// Package is one installed package as reported by the installer: an exact
// (name, version) pair.
type Package struct {
	Name    string
	Version string
}

// Specifier renders the package as an exact pip-style requirement.
func (p Package) Specifier() string {
	return p.Name + "==" + p.Version
}
