package postid

import (
	"strconv"
	"time"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// ID 是解析后的帖子 ID.
type ID struct {
	UserTag        string `json:"userTag"`
	TimeCompress   string `json:"timeCompress"`
	Seq            int    `json:"seq"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	// Time 为基准时间加 ElapsedSeconds，精度到秒.
	Time time.Time `json:"time"`
}

// Parse 按已知的 userTag 长度拆分帖子 ID.
// 时间段位数由剩余长度推出，因此每条记录单独解析，不假定固定位数.
func (g *Generator) Parse(postID string, userTagLen int) (*ID, error) {
	if userTagLen <= 0 || len(postID) < userTagLen+3 {
		return nil, errors.WithCode(code.ErrDecodingFailed, "post id %q is too short for user tag length %d", postID, userTagLen)
	}

	rest := postID[userTagLen:]
	seqPart := rest[len(rest)-2:]
	timePart := rest[:len(rest)-2]

	seq, err := strconv.Atoi(seqPart)
	if err != nil || !isDigit(seqPart[0]) || seq < MinSeq || seq > MaxSeq {
		return nil, errors.WithCode(code.ErrDecodingFailed, "invalid seq %q in post id %q", seqPart, postID)
	}
	elapsed, err := DecodeBase36(timePart)
	if err != nil {
		return nil, errors.Wrapf(err, "parse post id %q", postID)
	}

	return &ID{
		UserTag:        postID[:userTagLen],
		TimeCompress:   timePart,
		Seq:            seq,
		ElapsedSeconds: elapsed,
		Time:           g.benchmark.Add(time.Duration(elapsed) * time.Second),
	}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
