// commonsctl 在命令行上使用工具库.
package main

import (
	"github.com/ifkeeper/keeper-commons-utils/internal/commonsctl"
)

func main() {
	commonsctl.NewApp("commonsctl").Run()
}
