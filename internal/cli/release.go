package cli

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultContact is the address printed by the version screen.
const DefaultContact = "phoebe-discuss@lists.sourceforge.net"

// Flag describes one switch shown on the help screen.
type Flag struct {
	Names []string
	Help  string
}

// Release carries the identity strings printed by the help and version screens.
type Release struct {
	Name    string
	Version string
	Date    string
	Contact string
	Flags   []Flag
}

// DefaultFlags lists the switches understood by ParseArgs.
var DefaultFlags = []Flag{
	{Names: []string{"-h", "--help", "-?"}, Help: "this help screen"},
	{Names: []string{"-v", "--version"}, Help: "display PHOEBE version and exit"},
}

// NewRelease builds the release identity for the given build version and date.
func NewRelease(version, date string) Release {
	return Release{
		Name:    fmt.Sprintf("PHOEBE %s", version),
		Version: version,
		Date:    date,
		Contact: DefaultContact,
		Flags:   DefaultFlags,
	}
}

const usageTemplate = "\n{{ .Name | default \"PHOEBE\" }} command line arguments: [-hv] [parameter_file]\n\n" +
	"{{ range .Flags }}  {{ .Names | join \", \" | printf \"%-20s\" }}..  {{ .Help }}\n{{ end }}" +
	"\n"

const versionTemplate = "\n{{ .Name | default \"PHOEBE\" }}, {{ .Date | default \"unreleased\" }}\n" +
	"  Send comments and/or requests to {{ .Contact | default \"" + DefaultContact + "\" }}\n\n"

var (
	usageTmpl   = template.Must(template.New("usage").Funcs(sprig.TxtFuncMap()).Parse(usageTemplate))
	versionTmpl = template.Must(template.New("version").Funcs(sprig.TxtFuncMap()).Parse(versionTemplate))
)

// RenderUsage returns the help screen text.
func RenderUsage(r Release) (string, error) {
	return render(usageTmpl, r)
}

// RenderVersion returns the version screen text.
func RenderVersion(r Release) (string, error) {
	return render(versionTmpl, r)
}

func render(t *template.Template, r Release) (string, error) {
	if r.Flags == nil {
		r.Flags = DefaultFlags
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render %s screen: %w", t.Name(), err)
	}
	return buf.String(), nil
}
