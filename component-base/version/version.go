// Package version 保存通过 -ldflags 注入的构建信息.
package version

import (
	"fmt"
	"runtime"

	"github.com/gosuri/uitable"

	"github.com/ifkeeper/keeper-commons-utils/component-base/json"
)

var (
	// GitVersion 语义化版本号.
	GitVersion = "v0.0.0-master+$Format:%h$"
	// BuildDate ISO8601 格式的构建时间.
	BuildDate = "1970-01-01T00:00:00Z"
	// GitCommit 提交哈希.
	GitCommit = "$Format:%H$"
	// GitTreeState 为 clean 或 dirty.
	GitTreeState = ""
)

// Info 包含程序版本相关的元数据.
type Info struct {
	GitVersion   string `json:"gitVersion"`
	GitCommit    string `json:"gitCommit"`
	GitTreeState string `json:"gitTreeState"`
	BuildDate    string `json:"buildDate"`
	GoVersion    string `json:"goVersion"`
	Compiler     string `json:"compiler"`
	Platform     string `json:"platform"`
}

// String 返回表格形式的版本信息.
func (info Info) String() string {
	if s, err := info.Text(); err == nil {
		return string(s)
	}

	return info.GitVersion
}

// ToJSON 返回 JSON 形式的版本信息.
func (info Info) ToJSON() string {
	s, _ := json.Marshal(info)

	return string(s)
}

// Text 把版本信息格式化为表格.
func (info Info) Text() ([]byte, error) {
	table := uitable.New()
	table.RightAlign(0)
	table.MaxColWidth = 80
	table.Separator = " "
	table.AddRow("gitVersion:", info.GitVersion)
	table.AddRow("gitCommit:", info.GitCommit)
	table.AddRow("gitTreeState:", info.GitTreeState)
	table.AddRow("buildDate:", info.BuildDate)
	table.AddRow("goVersion:", info.GoVersion)
	table.AddRow("compiler:", info.Compiler)
	table.AddRow("platform:", info.Platform)

	return table.Bytes(), nil
}

// Get 返回当前程序的版本信息.
func Get() Info {
	return Info{
		GitVersion:   GitVersion,
		GitCommit:    GitCommit,
		GitTreeState: GitTreeState,
		BuildDate:    BuildDate,
		GoVersion:    runtime.Version(),
		Compiler:     runtime.Compiler,
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
