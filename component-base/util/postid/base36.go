package postid

import (
	"strconv"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// MaxFixedWidthElapsed 是 5 位 base36 能表示的最大秒数，约 699.8 天.
// 超过后时间段变为 6 位，与之前的 ID 混排时字典序不再等价于时间序.
const MaxFixedWidthElapsed int64 = 60466175

// EncodeBase36 用 0-9a-z 编码非负整数.
func EncodeBase36(n int64) string {
	return strconv.FormatInt(n, 36)
}

// DecodeBase36 解析 EncodeBase36 的输出，只接受小写字母.
func DecodeBase36(s string) (int64, error) {
	if s == "" {
		return 0, errors.WithCode(code.ErrDecodingFailed, "empty base36 string")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return 0, errors.WithCode(code.ErrDecodingFailed, "invalid base36 digit %q in %q", c, s)
		}
	}
	n, err := strconv.ParseInt(s, 36, 64)
	if err != nil {
		return 0, errors.WrapC(err, code.ErrDecodingFailed, "decode base36 %q", s)
	}
	return n, nil
}

// TimeCompressWidth 返回 elapsed 秒编码后的位数.
func TimeCompressWidth(elapsed int64) int {
	return len(EncodeBase36(elapsed))
}
