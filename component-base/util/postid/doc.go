// Package postid 生成按时间排序的紧凑帖子 ID 与按周分区的缓存键.
//
// 帖子 ID 由三段拼接而成:
//
//	userTag + base36(自基准时间起经过的秒数) + 两位十进制序号(01-99)
//
// 对同一个 userTag，只要时间段的 base36 位数不变、且调用方保证同一秒内
// 序号递增，生成的 ID 按字典序单调不减，可以直接作为聚簇索引主键做范围扫描.
//
// 时间段的位数会随时间增长：经过 60466175 秒("zzzzz")之后变为 6 位
// ("100000")，此时新旧 ID 的字典序不再与时间序一致，见 MaxFixedWidthElapsed.
//
// 周 ID 为 userTag + 本周一 00:00(所在时区) 距基准时间的十进制秒数，
// 同一周内取值稳定，相邻两周相差 604800.
package postid
