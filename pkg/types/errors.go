package types

import "errors"

// ErrInvalidArgument 调用方违反接口约定（空的敌人类型列表、非正数数量或分数等）
//
// 使用 errors.Is 判断，具体信息由调用点通过 fmt.Errorf("...: %w") 包装。
var ErrInvalidArgument = errors.New("invalid argument")
