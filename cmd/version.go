package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// buildVersion describes the running binary. The ldflags value wins;
// otherwise the module version and VCS stamp recorded by the Go
// toolchain are used.
type buildVersion struct {
	Version  string
	Revision string
	Dirty    bool
	Go       string
}

func readBuildVersion(info *debug.BuildInfo, ok bool) buildVersion {
	v := buildVersion{Version: version}
	if !ok || info == nil {
		return v
	}
	v.Go = info.GoVersion
	if v.Version == "(devel)" && info.Main.Version != "" {
		v.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			v.Revision = s.Value
			if len(v.Revision) > 12 {
				v.Revision = v.Revision[:12]
			}
		case "vcs.modified":
			v.Dirty = s.Value == "true"
		}
	}
	return v
}

func (v buildVersion) write(w io.Writer) {
	fmt.Fprintf(w, "hedgie %s", v.Version)
	if v.Revision != "" {
		fmt.Fprintf(w, " (%s", v.Revision)
		if v.Dirty {
			fmt.Fprint(w, ", modified")
		}
		fmt.Fprint(w, ")")
	}
	if v.Go != "" {
		fmt.Fprintf(w, " %s", v.Go)
	}
	fmt.Fprintln(w)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, VCS revision and Go toolchain",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		readBuildVersion(debug.ReadBuildInfo()).write(cmd.OutOrStdout())
	},
}
