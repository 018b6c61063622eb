// Package cli turns process arguments into startup actions and renders the
// help and version screens.
//
// Parsing is deliberately tolerant: the recognized switches are -h, -?,
// --help, -v and --version; any other token starting with '-' is reported as
// ActionUnrecognized, and everything else is a parameter file path.
//
//	for _, a := range cli.ParseArgs(os.Args[1:]) {
//	    switch a.Kind {
//	    case cli.ActionHelp:
//	        text, _ := cli.RenderUsage(release)
//	        fmt.Print(text)
//	    case cli.ActionParamFile:
//	        load(a.Path())
//	    }
//	}
//
// ParseArgs never performs I/O; executing the actions is the job of the
// startup controller in internal/app.
package cli
