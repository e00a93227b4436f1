// Package feed 存储和查询按帖子 ID 排序的用户动态.
//
// 帖子 ID 由 postid 生成，同一用户的 ID 按发布时间字典序递增，
// 因此按用户的时间范围查询可以转化为主键上的 BETWEEN 区间扫描.
// 当周的帖子同时写入以周 ID 为 key 的 redis hash，并通过 kafka 广播.
package feed
