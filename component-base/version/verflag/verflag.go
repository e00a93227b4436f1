// Package verflag 定义 --version 标志.
package verflag

import (
	"fmt"
	"io"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/ifkeeper/keeper-commons-utils/component-base/version"
)

type versionValue int

const (
	VersionFalse versionValue = 0
	VersionTrue  versionValue = 1
	VersionRaw   versionValue = 2
)

const strRawVersion string = "raw"

func (v *versionValue) IsBoolFlag() bool {
	return true
}

func (v *versionValue) Get() interface{} {
	return v
}

func (v *versionValue) Set(s string) error {
	if s == strRawVersion {
		*v = VersionRaw
		return nil
	}
	boolVal, err := strconv.ParseBool(s)
	if boolVal {
		*v = VersionTrue
	} else {
		*v = VersionFalse
	}
	return err
}

func (v *versionValue) String() string {
	if *v == VersionRaw {
		return strRawVersion
	}
	return fmt.Sprintf("%v", bool(*v == VersionTrue))
}

// Type 实现 pflag.Value.
func (v *versionValue) Type() string {
	return "version"
}

// VersionVar 在全局标志集中定义版本标志.
func VersionVar(p *versionValue, name string, value versionValue, usage string) {
	*p = value
	flag.Var(p, name, usage)
	flag.Lookup(name).NoOptDefVal = "true"
}

// Version 与 VersionVar 相同，返回新建的标志值.
func Version(name string, value versionValue, usage string) *versionValue {
	p := new(versionValue)
	VersionVar(p, name, value, usage)
	return p
}

const versionFlagName = "version"

var versionFlag = Version(versionFlagName, VersionFalse, "Print version information and quit.")

// AddFlags 把全局版本标志加入 fs.
func AddFlags(fs *flag.FlagSet) {
	fs.AddFlag(flag.Lookup(versionFlagName))
}

// PrintAndExitIfRequested 在指定了 --version 时打印版本并退出.
func PrintAndExitIfRequested() {
	if printIfRequested(os.Stdout) {
		os.Exit(0)
	}
}

func printIfRequested(w io.Writer) bool {
	switch *versionFlag {
	case VersionRaw:
		fmt.Fprintln(w, version.Get().ToJSON())
		return true
	case VersionTrue:
		fmt.Fprintf(w, "%s\n", version.Get())
		return true
	}
	return false
}
