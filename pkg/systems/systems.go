// Package systems 每帧运行的游戏系统
//
// 系统按固定顺序由 game.Session 调度：
// Player → WaveSpawn → AI → Movement → Collision → Lifetime。
// 所有系统都在游戏循环所在的 goroutine 中运行；
// 唯一的并行点是 AISystem 的决策阶段，它只读组件，结果仍按实体ID顺序串行应用。
package systems

// LogOutputFrameInterval 日志输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 300
