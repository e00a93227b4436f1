// feed-apiserver 发布帖子并按时间窗口查询用户时间线.
package main

import (
	"os"
	"runtime"

	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver"
)

func main() {
	if len(os.Getenv("GOMAXPROCS")) == 0 {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	feedserver.NewApp("feed-apiserver").Run()
}
