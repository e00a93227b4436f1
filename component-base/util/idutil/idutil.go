// Package idutil 提供可替换的 ID 生成器以及基于 sonyflake/hashids 的整数与短 ID.
package idutil

import (
	"crypto/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sony/sonyflake"
	hashids "github.com/speps/go-hashids"

	"github.com/ifkeeper/keeper-commons-utils/component-base/util/iputil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/stringutil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const (
	Alphabet62 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
	Alphabet36 = "abcdefghijklmnopqrstuvwxyz1234567890"

	instanceSalt = "x20k5x"
)

// Generator 生成字符串 ID.
type Generator interface {
	GenerateID() string
}

// GenerateID 调用 g 生成 ID.
func GenerateID(g Generator) string {
	return g.GenerateID()
}

// UUIDGenerator 生成带连字符的 v4 UUID.
type UUIDGenerator struct{}

func (UUIDGenerator) GenerateID() string { return uuid.NewString() }

// UserIDGenerator 生成去掉连字符的 32 位 UUID，用作用户 ID.
type UserIDGenerator struct{}

func (UserIDGenerator) GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SnowflakeGenerator 生成十进制 sonyflake ID.
type SnowflakeGenerator struct{}

func (SnowflakeGenerator) GenerateID() string {
	id, err := GetIntID()
	if err != nil {
		panic(err)
	}
	return strconv.FormatUint(id, 10)
}

// ShortIDGenerator 生成 hashids 编码的短 ID.
type ShortIDGenerator struct {
	Prefix string
}

func (g ShortIDGenerator) GenerateID() string {
	id, err := GetUUID36(g.Prefix)
	if err != nil {
		panic(err)
	}
	return id
}

// NewUUID 等价于 GenerateID(UUIDGenerator{}).
func NewUUID() string { return GenerateID(UUIDGenerator{}) }

// NewUserID 等价于 GenerateID(UserIDGenerator{}).
func NewUserID() string { return GenerateID(UserIDGenerator{}) }

var (
	sf     *sonyflake.Sonyflake
	sfOnce sync.Once
)

// machineID 取本机 IPv4 的后两段，没有可用地址时为 0.
func machineID() (uint16, error) {
	ip := iputil.LocalIPv4()
	if ip == nil {
		return 0, nil
	}
	return uint16(ip[2])<<8 + uint16(ip[3]), nil
}

// GetIntID 返回全局唯一的 sonyflake 整数 ID.
func GetIntID() (uint64, error) {
	sfOnce.Do(func() {
		sf = sonyflake.NewSonyflake(sonyflake.Settings{MachineID: machineID})
	})
	if sf == nil {
		return 0, errors.WithCode(code.ErrUnknown, "sonyflake is not initialized")
	}
	id, err := sf.NextID()
	if err != nil {
		return 0, errors.WrapC(err, code.ErrUnknown, "generate sonyflake id")
	}
	return id, nil
}

// GetInstanceID 把 uid 编码为至少 6 位的短 ID 并加上前缀，如 post-2v69o5.
func GetInstanceID(uid uint64, prefix string) (string, error) {
	hd := hashids.NewData()
	hd.Alphabet = Alphabet36
	hd.MinLength = 6
	hd.Salt = instanceSalt

	return encode(hd, uid, prefix)
}

// GetUUID36 生成一个新的 sonyflake ID 并编码为 36 进制短 ID.
func GetUUID36(prefix string) (string, error) {
	id, err := GetIntID()
	if err != nil {
		return "", err
	}
	hd := hashids.NewData()
	hd.Alphabet = Alphabet36

	return encode(hd, id, prefix)
}

func encode(hd *hashids.HashIDData, id uint64, prefix string) (string, error) {
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return "", errors.WrapC(err, code.ErrEncodingFailed, "create hashids")
	}
	s, err := h.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return "", errors.WrapC(err, code.ErrEncodingFailed, "encode %d", id)
	}
	return prefix + stringutil.Reverse(s), nil
}

// DecodeInstanceID 还原 GetInstanceID 编码前的 uid.
func DecodeInstanceID(instanceID, prefix string) (uint64, error) {
	hd := hashids.NewData()
	hd.Alphabet = Alphabet36
	hd.MinLength = 6
	hd.Salt = instanceSalt

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return 0, errors.WrapC(err, code.ErrDecodingFailed, "create hashids")
	}
	nums, err := h.DecodeInt64WithError(stringutil.Reverse(strings.TrimPrefix(instanceID, prefix)))
	if err != nil || len(nums) != 1 {
		return 0, errors.WithCode(code.ErrDecodingFailed, "invalid instance id %q", instanceID)
	}
	return uint64(nums[0]), nil
}

// RandString 从 letters 中随机取 n 个字符，随机源为 crypto/rand.
func RandString(letters string, n int) string {
	output := make([]byte, n)
	randomness := make([]byte, n)
	if _, err := rand.Read(randomness); err != nil {
		panic(err)
	}

	l := len(letters)
	for pos := range output {
		output[pos] = letters[int(randomness[pos])%l]
	}
	return string(output)
}

// NewSecretID 生成 36 位随机密钥 ID.
func NewSecretID() string { return RandString(Alphabet62, 36) }

// NewSecretKey 生成 32 位随机密钥.
func NewSecretKey() string { return RandString(Alphabet62, 32) }
