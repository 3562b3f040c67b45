package config

import (
	"fmt"
	"os"

	"github.com/gonewx/abyssal/pkg/embedded"
)

// readConfigFile 读取配置文件
//
// 嵌入数据中存在该路径时优先使用嵌入版本，
// 否则回退到操作系统文件系统（开发时直接编辑 data/ 目录、测试使用临时文件）。
func readConfigFile(path string) ([]byte, error) {
	if embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return data, nil
}
